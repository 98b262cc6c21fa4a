package cli

import (
	"context"
	"log"
	"os"
	"path/filepath"
)

// Profile shows the logged-in user's public fields, freshly fetched.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.client.GetProfile(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Name:     " + user.FirstName + " " + user.LastName)
	printlnFn("Username: " + user.Username)
	printlnFn("Email:    " + user.Email)
	if user.Avatar != nil {
		printlnFn("Avatar:   " + *user.Avatar)
	}
	return nil
}

// UpdateProfile replaces the four profile fields and refreshes the
// persisted session copy of the user.
func (a *App) UpdateProfile(ctx context.Context) error {
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

	user, err := a.client.UpdateProfile(ctx, firstName, lastName, username, email)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	a.current.User = user
	if err := a.sessions.Save(*a.current); err != nil {
		return err
	}
	printlnFn("Profile updated successfully.")
	return nil
}

// Avatar uploads an image file as the new avatar.
func (a *App) Avatar(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Image file path")
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer f.Close()

	user, err := a.client.UploadAvatar(ctx, filepath.Base(path), f)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	a.current.User = user
	if err := a.sessions.Save(*a.current); err != nil {
		return err
	}
	printlnFn("Avatar updated successfully.")
	return nil
}
