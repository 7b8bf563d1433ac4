package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"hacksnooze/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, full name, and password and attempts to
// create a new account. On success the new user becomes the current
// session. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter your full name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	user, err := a.authService.Signup(ctx, username, password, name)
	if err != nil {
		log.Printf("Signup unsuccessful: %s", err.Error())
		return err
	}

	a.user = user
	printlnFn(fmt.Sprintf("Welcome, %s!", user.Name))
	return nil
}

// Login prompts for credentials and tries to authenticate. On success the
// returned user (with server-side favorites and own stories) becomes the
// current session. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	user, err := a.authService.Login(ctx, username, password)
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.user = user
	printlnFn(fmt.Sprintf("Welcome back, %s!", user.Name))
	return nil
}

// Logout drops the stored session and returns to the anonymous state.
// The feed stays loaded; only user-owned collections go away.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx, a.user); err != nil {
		log.Printf("Logout failed: %s", err.Error())
		return err
	}
	a.user = nil
	printlnFn("Logged out.")
	return nil
}
