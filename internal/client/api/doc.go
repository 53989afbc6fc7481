// Package api is the HTTP client for the TapCard backend.
//
// # Overview
//
// Client lists the backend operations the application uses. HTTPClient
// implements it over net/http:
//
//   - Authenticated calls carry "Authorization: Bearer <token>", where the
//     token is read from a TokenSource at call time. A missing token never
//     blocks a call; the backend decides.
//   - Every request carries an X-Request-ID and runs under a timeout.
//   - A 401 on an authenticated call invokes the unauthorized handler (the
//     session logs out) and the error is still returned to the caller.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are *APIError
// values carrying the status and the decoded ErrorDetail; a 401 matches
// ErrUnauthorized and a 404 matches ErrNotFound through errors.Is. Message
// turns any error into a single line fit for the user.
package api
