// Package session persists the bearer credential of the console.
//
// A credential is stored per scope. The scope plays the role of a browser
// tab: by default it is derived from the parent shell, so every terminal
// gets its own login while one-shot invocations from the same shell share
// it. Credentials older than the retention window are treated as absent
// and pruned, which approximates "cleared when the tab closes".
//
// SQLiteStore keeps credentials in the local console database. MemoryStore
// keeps them for the life of the process only.
package session
