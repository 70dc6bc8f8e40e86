package cli

import (
	"context"
	"fmt"
)

// Register prompts for credentials and creates a new account. On success the
// user is logged in immediately.
func (a *App) Register(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error reading email: %s\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error reading password: %s\n", err)
		return
	}

	if err := a.api.Signup(ctx, email, password); err != nil {
		fmt.Fprintf(a.out, "registration failed: %s\n", err)
		return
	}

	a.userName = email
	fmt.Fprintln(a.out, "Registered and logged in.")
}

// Login prompts for credentials and obtains an access token.
func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error reading email: %s\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error reading password: %s\n", err)
		return
	}

	if err := a.api.Login(ctx, email, password); err != nil {
		fmt.Fprintf(a.out, "login failed: %s\n", err)
		return
	}

	a.userName = email
	fmt.Fprintln(a.out, "Logged in.")
}
