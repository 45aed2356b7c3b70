package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/dukerupert/habitly/internal/cli"
	"github.com/dukerupert/habitly/internal/logging"
	"github.com/dukerupert/habitly/internal/session"
)

var CLI struct {
	Version   kong.VersionFlag
	BaseURL   string `help:"Habits API base URL." env:"HABITLY_BASE_URL" default:"http://localhost:3000"`
	ConfigDir string `help:"Directory for session, cache and logs." env:"HABITLY_CONFIG_DIR"`
	LogLevel  string `help:"Log level (debug|info|warn|error)." env:"HABITLY_LOG_LEVEL" default:"warn"`
	Debug     bool   `help:"Mirror logs to stderr."`

	Login  cli.LoginCmd  `cmd:"" help:"Log in and store the session."`
	Logout cli.LogoutCmd `cmd:"" help:"Forget the stored session."`
	List   cli.ListCmd   `cmd:"" help:"List habits."`
	Create cli.CreateCmd `cmd:"" help:"Create a habit."`
	Update cli.UpdateCmd `cmd:"" help:"Update a habit."`
	Delete cli.DeleteCmd `cmd:"" help:"Delete a habit."`
	Upload struct {
		Image cli.UploadImageCmd `cmd:"" help:"Attach a photo to a habit."`
		Audio cli.UploadAudioCmd `cmd:"" help:"Attach an audio note to a habit."`
	} `cmd:"" help:"Attach files to a habit."`
	Item struct {
		Add cli.ItemAddCmd `cmd:"" help:"Add a checklist item."`
	} `cmd:"" help:"Manage checklist items."`
	Users cli.UsersCmd `cmd:"" help:"List user accounts."`
	Tui   cli.TuiCmd   `cmd:"" help:"Launch the interactive habit browser." default:"1"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitly"),
		kong.Description("Habit tracker client for the habits REST API"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	configDir := CLI.ConfigDir
	if configDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: resolve config dir: %v\n", err)
			os.Exit(1)
		}
		configDir = filepath.Join(base, "habitly")
	}

	logger, err := logging.Setup(logging.Config{
		Level:     CLI.LogLevel,
		ConfigDir: configDir,
		Debug:     CLI.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: set up logging: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		BaseURL:   CLI.BaseURL,
		ConfigDir: configDir,
		Logger:    logger,
		Sessions:  session.NewStore(configDir),
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
