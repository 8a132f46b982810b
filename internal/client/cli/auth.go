package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/callsecure/internal/client/models"
	"github.com/dmitrijs2005/callsecure/internal/common"
)

// getSimpleText, getPassword and getYesNo are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getYesNo      = GetYesNo
)

// promptDefault asks for a value and falls back to def on empty input.
func (a *App) promptDefault(prompt, def string) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

func printFieldErrors(errs models.FieldErrors) {
	for _, f := range errs.Fields() {
		printlnFn(fmt.Sprintf("  %s: %s", f, errs[f]))
	}
}

// Register prompts for username, email, phone and password and tries to
// create an account. Rejected values (except the password) are offered as
// defaults on the next attempt. On success the login prompt follows.
//
// Field errors are printed, not returned; the returned error is an I/O or
// storage failure.
func (a *App) Register(ctx context.Context) error {
	username, err := a.promptDefault("Enter username", a.draft.Username)
	if err != nil {
		return err
	}
	email, err := a.promptDefault("Enter email", a.draft.Email)
	if err != nil {
		return err
	}
	phone, err := a.promptDefault("Enter phone number", a.draft.Phone)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := models.RegisterForm{Username: username, Email: email, Phone: phone, Password: string(password)}

	errs, err := a.authService.Register(ctx, form)
	if err != nil {
		return err
	}
	if !errs.Empty() {
		printlnFn("Registration failed:")
		printFieldErrors(errs)
		form.Password = ""
		a.draft = form
		return nil
	}

	a.draft = models.RegisterForm{}
	printlnFn("Account created. Please log in.")
	return a.Login(ctx)
}

// Login prompts for an identifier (username, email or phone), the password
// and the "remember me" choice. After a successful sign-in it waits for the
// service's success callback and then shows the dashboard.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter username, email or phone", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	remember, err := getYesNo(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	res := a.authService.Authenticate(ctx, models.Credentials{
		Identifier: identifier,
		Password:   string(password),
		RememberMe: remember,
	}, func() { close(done) })

	if !res.Success {
		printFieldErrors(res.Errors)
		return nil
	}

	printlnFn("Login Successful!")

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	a.enter(res.User)
	return a.Dashboard(ctx)
}

// Logout forgets the remembered session and returns to the guest state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.leave()
	printlnFn("Logged out")
	return nil
}
