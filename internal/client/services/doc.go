// Package services contains the application services of the gym console.
//
// SessionManager owns the bearer credential: it restores it from the
// session store, logs in and out, and expires the session when the API
// answers 401. Subscribers are told about every transition.
//
// CustomerService and BiometricService validate operator input and
// forward it to the API client.
package services
