// Command portfolioctl runs management tasks against the configured database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/portfolio-space/core/internal/config"
	"github.com/portfolio-space/core/internal/database"
	"github.com/portfolio-space/core/internal/modules/auth"
	"github.com/portfolio-space/core/internal/modules/blog"
	"github.com/portfolio-space/core/internal/modules/content/blogpost"
	"github.com/portfolio-space/core/internal/modules/system/util/slugtracker"
	"github.com/portfolio-space/core/internal/seed"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type env struct {
	cfg *config.AppConfig
	db  *gorm.DB
	log *zap.Logger
	out io.Writer
}

type command struct {
	help string
	run  func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"migrate":      {"create or update the database schema", runMigrate},
	"seed":         {"insert sample content that is not present yet", runSeed},
	"migrate-blog": {"copy legacy blog posts into the page tree", runMigrateBlog},
	"create-admin": {"create an admin user, or reset its password with -reset", runCreateAdmin},
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("portfolioctl", flag.ContinueOnError)
	fs.SetOutput(out)
	configPath := fs.String("config", config.DefaultConfigPath, "Path to YAML config file")
	envPath := fs.String("env", ".env", "Path to dotenv file")
	fs.Usage = func() { usage(out) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		usage(out)
		return errors.New("no command given")
	}
	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		usage(out)
		return fmt.Errorf("unknown command %q", name)
	}

	if err := config.LoadDotEnv(*envPath); err != nil {
		return err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.Connect(cfg, true)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer database.Close(db)

	return cmd.run(ctx, &env{cfg: cfg, db: db, log: logger, out: out}, fs.Args()[1:])
}

func usage(out io.Writer) {
	fmt.Fprintln(out, "usage: portfolioctl [-config config.yml] <command> [flags]")
	fmt.Fprintln(out, "\ncommands:")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(out, "  %-14s %s\n", n, commands[n].help)
	}
}

// runMigrate only reports; Connect has already migrated.
func runMigrate(_ context.Context, e *env, _ []string) error {
	fmt.Fprintln(e.out, "Database schema is up to date")
	return nil
}

func runSeed(_ context.Context, e *env, _ []string) error {
	res, err := seed.New(e.db, e.log).Run()
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Seeded sample data: %s\n", res)
	return nil
}

func runMigrateBlog(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("migrate-blog", flag.ContinueOnError)
	fs.SetOutput(e.out)
	title := fs.String("index-title", blog.DefaultIndexTitle, "Title of the blog index page to create if none exists")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := blog.NewService(e.db, slugtracker.NewService(e.db), e.log)
	report, err := blog.NewMigrator(svc, blogpost.NewService(e.db), e.log).MigrateLegacy(ctx, *title)
	if err != nil {
		return err
	}
	if report.IndexCreated {
		fmt.Fprintf(e.out, "Created blog index %q\n", *title)
	}
	fmt.Fprintf(e.out, "Migrated %d legacy posts\n", report.Migrated)
	if report.Skipped > 0 {
		fmt.Fprintf(e.out, "Skipped %d posts that already exist\n", report.Skipped)
	}
	return nil
}

func runCreateAdmin(_ context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.SetOutput(e.out)
	username := fs.String("username", e.cfg.Admin.Username, "Admin username")
	password := fs.String("password", e.cfg.Admin.Password, "Admin password (at least 8 characters)")
	reset := fs.Bool("reset", false, "Reset the password when the user exists")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*username) == "" {
		return errors.New("-username is required")
	}

	svc := auth.NewService(e.db)
	_, err := svc.CreateAdmin(*username, *password)
	switch {
	case errors.Is(err, auth.ErrUserExists) && *reset:
		if err := svc.SetPassword(*username, *password); err != nil {
			return err
		}
		fmt.Fprintf(e.out, "Password reset for %s\n", *username)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(e.out, "Created admin %s\n", *username)
	return nil
}
