// Package cli provides the interactive TapCard command-line client.
//
// The App drives a Session and the profile/share services from a REPL. Before
// login only register, login, scan, help and exit are available; afterwards
// the user can view and edit their card, manage social links and show the
// card as a QR code.
//
// Profile edits and link changes are made to a local draft and sent to the
// backend together by "save". dellink is the exception and deletes a saved
// link immediately.
//
// The App is also the session's Navigator: when the session ends, whether by
// "logout" or because the backend rejected the token, the App discards the
// draft and returns to the login prompt.
package cli
