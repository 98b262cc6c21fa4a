package cli

import (
	"context"
	"log"

	"github.com/taskyhq/tasky-be/internal/client/api"
	"github.com/taskyhq/tasky-be/internal/client/session"
)

// Register collects the registration form and activates the returned
// session on success.
func (a *App) Register(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "First name")
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name")
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Username")
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email")
	if err != nil {
		return err
	}
	password, err := getPassword("Password")
	if err != nil {
		return err
	}

	resp, err := a.client.Register(ctx, api.RegisterRequest{
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		Email:     email,
		Password:  password,
	})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.activate(session.Session{Token: resp.Token, User: resp.User}); err != nil {
		return err
	}
	printlnFn(resp.Message)
	return nil
}

// Login authenticates with email or username.
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Email or username")
	if err != nil {
		return err
	}
	password, err := getPassword("Password")
	if err != nil {
		return err
	}

	resp, err := a.client.Login(ctx, login, password)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.activate(session.Session{Token: resp.Token, User: resp.User}); err != nil {
		return err
	}
	printlnFn(resp.Message)
	return nil
}

// Forgot requests a password-reset mail.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email")
	if err != nil {
		return err
	}
	msg, err := a.client.ForgotPassword(ctx, email)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn(msg)
	return nil
}

// Reset consumes a mailed reset token.
func (a *App) Reset(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Reset token")
	if err != nil {
		return err
	}
	newPassword, err := getPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm new password")
	if err != nil {
		return err
	}
	if newPassword != confirm {
		printlnFn("Passwords do not match.")
		return nil
	}

	if err := a.client.ResetPassword(ctx, token, newPassword); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Password has been reset. You can now log in.")
	return nil
}

// Passwd changes the password of the logged-in user.
func (a *App) Passwd(ctx context.Context) error {
	current, err := getPassword("Current password")
	if err != nil {
		return err
	}
	newPassword, err := getPassword("New password")
	if err != nil {
		return err
	}

	if err := a.client.ChangePassword(ctx, current, newPassword); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Password updated successfully.")
	return nil
}

// Logout clears the in-memory and persisted session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.deactivate(); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}
