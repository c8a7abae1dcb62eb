// Package model holds the records exchanged with the PulseNews API.
//
// Types mirror the API's JSON shapes (snake_case tags). The package imports
// nothing internal; every other package may import it.
//
// Derived values (permission flags, the comment tree) are computed here as
// pure functions of the records so that callers never keep independent state
// for them.
package model
