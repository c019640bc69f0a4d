package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/guard"
)

var errEmptyCredentials = errors.New("email and password are required")

// Login prompts for credentials and signs in. On success the dashboard is
// shown.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		id, _ := a.session.Identity()
		a.printf("Already logged in as %s. Use 'logout' first.\n", id.Email)
		return nil
	}

	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	if strings.TrimSpace(email) == "" || password == "" {
		a.println("Email and password are required.")
		return errEmptyCredentials
	}

	id, err := a.session.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	a.printf("Welcome, %s (%s).\n", id.DisplayName(), id.Role)
	return a.Navigate(ctx, "/")
}

// Logout forgets the credential of this shell.
func (a *App) Logout(ctx context.Context) error {
	a.closeList()
	err := a.session.Logout(ctx)
	a.view, _ = guard.Lookup(guard.ViewLogin)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	id, ok := a.session.Identity()
	if !ok {
		a.println("Not logged in.")
		return nil
	}

	a.printf("%s <%s>\n", id.DisplayName(), id.Email)
	a.printf("  id:   %s\n", id.ID)
	a.printf("  role: %s\n", id.Role)
	if !id.ExpiresAt.IsZero() {
		a.printf("  token expires: %s\n", id.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}

	var caps []string
	for _, c := range guard.AllCapabilities {
		if guard.HasCapability(id, c) {
			caps = append(caps, string(c))
		}
	}
	a.printf("  can:  %s\n", strings.Join(caps, ", "))
	return nil
}
