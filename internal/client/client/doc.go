// Package client contains the transport side of the gym console.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     gym membership backend: login, health, customers and biometrics.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that injects the
//     bearer token, tags every request with an X-Request-ID, and maps
//     responses to the error taxonomy below.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) opening the
//     SQLite console database and applying embedded goose migrations.
//
// # Error Handling
//
//   - *AuthError          login rejected, with the server's message
//   - ErrSessionExpired   401 on an authenticated call; the bound Session is
//     expired before the error is returned, for every endpoint alike
//   - *RequestError       any other non-2xx answer, carrying status and detail
//   - ErrUnavailable      the server could not be reached
//   - ErrMissingTotal     a listing answer without a total count
//
// Match them with errors.Is / errors.As. Nothing is retried automatically.
package client
