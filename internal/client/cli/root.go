package cli

import "context"

// Run prints the greeting for the current session state and serves commands
// until the user exits. The session must already be initialized.
func (a *App) Run(ctx context.Context) {
	a.println("TapCard CLI (type 'help' for commands)")

	if a.isLoggedIn() {
		a.ToHome(ctx)
	} else {
		a.println("Type 'login' or 'register' to get started.")
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
