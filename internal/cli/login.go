package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/dukerupert/habitly/internal/auth"
)

type LoginCmd struct {
	Username string `short:"u" help:"Account username. Prompted for when omitted."`
	Password string `short:"p" help:"Account password. Prompted for when omitted."`
}

func (cmd *LoginCmd) Run(ctx *Context) error {
	username, password := cmd.Username, cmd.Password
	if username == "" || password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username").
					Value(&username),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	client := auth.NewClient(ctx.BaseURL, auth.WithLogger(ctx.Logger))
	tokens, err := client.Login(context.Background(), username, password)
	if err != nil {
		// Generic by contract: the log has the real cause.
		return err
	}

	if err := ctx.Sessions.Save(*tokens); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Printf("Logged in as %s.\n", username)
	return nil
}

type LogoutCmd struct{}

func (cmd *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Sessions.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
