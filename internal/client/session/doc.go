// Package session holds the client's authentication state.
//
// A Session is built explicitly and passed to everything that needs it. It
// restores itself from a store.Store on Initialize, moves between
// Authenticated and Unauthenticated on Login, Register and Logout, and serves
// the current bearer token to the API client through Token. Token blocks
// until Initialize has finished, so no authenticated request is sent while
// the persisted state is still loading.
package session
