// Package api is the HTTP client for the PulseNews REST API.
//
// Every request carries an X-Request-ID and, when a token source is
// configured and yields a token, an "Authorization: Bearer" header. Non-2xx
// responses are returned as *Error with a normalized Code and the per-field
// messages Django REST Framework puts in validation payloads.
//
// The client does not retry. An optional client-side rate limit throttles
// outgoing requests.
package api
