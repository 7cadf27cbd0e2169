// Command antly-admin runs operator tasks against the Antly database: migrations,
// provisioning admin accounts (which cannot self-register), inspecting users
// and seeding a development database.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/antly/antly-api/config"
	"github.com/antly/antly-api/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Stdin  io.Reader
	Stdout io.Writer
}

func main() {
	logger := bootstrap.InitLogger(config.ObservabilityConfig{})

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if _, err := fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	logger = bootstrap.InitLogger(cfg.Observability)

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrations,
		},
		"create-admin": {
			name:        "create-admin",
			description: "Create an admin account (password read from stdin or ANTLY_ADMIN_PASSWORD)",
			run:         runCreateAdmin,
		},
		"list-users": {
			name:        "list-users",
			description: "List accounts, optionally filtered by role",
			run:         runListUsers,
		},
		"db-seed": {
			name:        "db-seed",
			description: "Seed development accounts and sample ads",
			run:         runDBSeed,
		},
		"flush-listing-cache": {
			name:        "flush-listing-cache",
			description: "Invalidate every cached page of the public ad listing",
			run:         runFlushListingCache,
		},
	}
}

func printUsage(w io.Writer) error {
	if _, err := fmt.Fprint(w, "Usage: antly-admin <command> [flags]\n\nAvailable commands:\n"); err != nil {
		return err
	}
	names := make([]string, 0, len(commands()))
	for name := range commands() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "  %-24s %s\n", name, commands()[name].description); err != nil {
			return err
		}
	}
	return nil
}
