package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/antly/antly-api/internal/adapters/passhash"
	redisadapter "github.com/antly/antly-api/internal/adapters/redis"
	"github.com/antly/antly-api/internal/bootstrap"
	"github.com/antly/antly-api/internal/data"
	"github.com/antly/antly-api/internal/devseed"
	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/domain/model"
	apperrors "github.com/antly/antly-api/internal/errors"
	"github.com/antly/antly-api/internal/service"
)

const (
	defaultMigrationTimeout = 5 * time.Minute
	defaultCommandTimeout   = 30 * time.Second
	adminPasswordEnv        = "ANTLY_ADMIN_PASSWORD"
	minAdminPasswordLen     = 12
)

type migrateOptions struct {
	Timeout time.Duration
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := migrateOptions{}
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout, "Maximum duration to wait for migrations to complete")

	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}
	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: cmdCtx.Config.Postgres, Logger: cmdCtx.Logger})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	return bootstrap.RunMigrations(ctx, db, cmdCtx.Logger)
}

type createAdminOptions struct {
	Name  string
	Email string
}

func parseCreateAdminFlags(args []string) (createAdminOptions, error) {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts createAdminOptions
	fs.StringVar(&opts.Name, "name", "", "Display name")
	fs.StringVar(&opts.Email, "email", "", "Login email")

	if err := fs.Parse(args); err != nil {
		return createAdminOptions{}, err
	}
	opts.Name = strings.TrimSpace(opts.Name)
	opts.Email = model.NormalizeEmail(opts.Email)
	if opts.Name == "" {
		return createAdminOptions{}, errors.New("--name is required")
	}
	if opts.Email == "" || !strings.Contains(opts.Email, "@") {
		return createAdminOptions{}, errors.New("--email must be an email address")
	}
	return opts, nil
}

// readAdminPassword prefers the environment and otherwise reads the first line of r.
func readAdminPassword(r io.Reader, getenv func(string) string) (string, error) {
	pw := getenv(adminPasswordEnv)
	if pw == "" && r != nil {
		line, err := bufio.NewReader(r).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password: %w", err)
		}
		pw = strings.TrimRight(line, "\r\n")
	}
	if len(pw) < minAdminPasswordLen {
		return "", fmt.Errorf("admin password must be at least %d characters", minAdminPasswordLen)
	}
	if len(pw) > service.MaxPasswordBytes {
		return "", fmt.Errorf("admin password must be at most %d bytes", service.MaxPasswordBytes)
	}
	return pw, nil
}

func runCreateAdmin(cmdCtx *commandContext, args []string) error {
	opts, err := parseCreateAdminFlags(args)
	if err != nil {
		return err
	}
	password, err := readAdminPassword(cmdCtx.Stdin, os.Getenv)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: cmdCtx.Config.Postgres, Logger: cmdCtx.Logger})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	hash, err := passhash.NewBcrypt(cmdCtx.Config.Auth.BcryptCost).Hash(password)
	if err != nil {
		return err
	}
	user, err := data.NewUserRepo(db).Create(ctx, model.CreateUserRequest{
		Name:         opts.Name,
		Email:        opts.Email,
		PasswordHash: hash,
		Role:         domainauth.RoleAdmin,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			return fmt.Errorf("an account with email %s already exists", opts.Email)
		}
		return fmt.Errorf("create admin: %w", err)
	}

	cmdCtx.Logger.InfoContext(ctx, "admin created", "user_id", user.ID)
	_, err = fmt.Fprintf(cmdCtx.Stdout, "created admin %s (%s)\n", user.Email, user.ID)
	return err
}

type listUsersOptions struct {
	Role   *domainauth.Role
	Limit  int
	Offset int
}

func parseListUsersFlags(args []string) (listUsersOptions, error) {
	fs := flag.NewFlagSet("list-users", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		opts listUsersOptions
		role string
	)
	fs.StringVar(&role, "role", "", "Only show accounts with this role (client, provider, admin)")
	fs.IntVar(&opts.Limit, "limit", 50, "Maximum rows")
	fs.IntVar(&opts.Offset, "offset", 0, "Rows to skip")

	if err := fs.Parse(args); err != nil {
		return listUsersOptions{}, err
	}
	if role != "" {
		r, err := domainauth.ParseRole(role)
		if err != nil {
			return listUsersOptions{}, fmt.Errorf("--role: %w", err)
		}
		opts.Role = &r
	}
	if opts.Limit <= 0 || opts.Offset < 0 {
		return listUsersOptions{}, errors.New("--limit must be positive and --offset non-negative")
	}
	return opts, nil
}

func runListUsers(cmdCtx *commandContext, args []string) error {
	opts, err := parseListUsersFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: cmdCtx.Config.Postgres, Logger: cmdCtx.Logger})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	users, err := data.NewUserRepo(db).List(ctx, model.UsersListOptions{
		Limit:  opts.Limit,
		Offset: opts.Offset,
		Role:   opts.Role,
	})
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	return renderUsers(cmdCtx.Stdout, users)
}

func renderUsers(w io.Writer, users []*model.User) error {
	if len(users) == 0 {
		_, err := fmt.Fprintln(w, "(no users found)")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE\tCREATED"); err != nil {
		return err
	}
	for _, u := range users {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.Email, u.Name, u.Role, u.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runFlushListingCache(cmdCtx *commandContext, _ []string) error {
	if !cmdCtx.Config.RedisEnabled() {
		_, err := fmt.Fprintln(cmdCtx.Stdout, "redis is not configured; nothing to flush")
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	client, err := bootstrap.ConnectRedis(ctx, bootstrap.DatabaseConfig{RedisConfig: cmdCtx.Config.Redis, Logger: cmdCtx.Logger})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	cache := redisadapter.NewListingCache(client, redisadapter.ListingCacheOptions{
		Prefix: cmdCtx.Config.Cache.KeyPrefix,
		TTL:    cmdCtx.Config.Cache.ListingTTL,
	})
	if err := cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate listing cache: %w", err)
	}
	_, err = fmt.Fprintln(cmdCtx.Stdout, "listing cache invalidated")
	return err
}

func parseDBSeedFlags(args []string) (bool, error) {
	fs := flag.NewFlagSet("db-seed", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var allowRemote bool
	fs.BoolVar(&allowRemote, "allow-remote", false, "Allow seeding a database that is not on this machine")
	if err := fs.Parse(args); err != nil {
		return false, err
	}
	return allowRemote, nil
}

func runDBSeed(cmdCtx *commandContext, args []string) error {
	allowRemote, err := parseDBSeedFlags(args)
	if err != nil {
		return err
	}
	if host := cmdCtx.Config.Postgres.Host; isLikelyRemoteHost(host) && !allowRemote {
		return fmt.Errorf(
			"refusing to seed potentially remote database host %q; re-run with --allow-remote if this is intentional",
			host,
		)
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: cmdCtx.Config.Postgres, Logger: cmdCtx.Logger})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	svcs := devseed.Services{
		Users:  data.NewUserRepo(db),
		Ads:    data.NewAdRepo(db),
		Hasher: passhash.NewBcrypt(cmdCtx.Config.Auth.BcryptCost),
	}
	if err := devseed.Run(ctx, svcs, cmdCtx.Logger); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	_, err = fmt.Fprintf(cmdCtx.Stdout, "seeded development data (password %q)\n", devseed.DevPassword)
	return err
}

func isLikelyRemoteHost(host string) bool {
	h := strings.ToLower(strings.TrimSpace(host))
	if h == "" || h == "localhost" || strings.HasSuffix(h, ".local") {
		return false
	}
	if ip := net.ParseIP(h); ip != nil {
		return !ip.IsLoopback()
	}
	return true
}
