// Package session is the client's authentication context.
//
// A Session moves from StateLoading to StateAuthenticated or StateAnonymous
// when Init reads the persisted tokens and cached user. Login, Register and
// Logout change state and keep the persistent store in sync; permission
// checks are derived from the current user on every call.
package session
