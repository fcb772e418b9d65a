// Command manage bootstraps administrator accounts.
//
//	manage createsuperuser -username root -password '...'
//	manage promote -username alice -staff -superuser=false
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"eventscheduler/config"
	"eventscheduler/internal/adapters/auth"
	"eventscheduler/internal/domain"
	"eventscheduler/internal/repository/postgres"
	"eventscheduler/internal/services"

	_ "github.com/lib/pq"
)

const usage = `usage: manage <command> [flags]

commands:
  createsuperuser  create an account with staff and superuser roles
  promote          set the staff and superuser roles of an existing account
`

func main() {
	logger := config.NewLogger()
	if err := run(context.Background(), os.Args[1:], os.Stdout, logger); err != nil {
		var weak *domain.WeakPasswordError
		if errors.As(err, &weak) {
			for _, reason := range weak.Reasons {
				fmt.Fprintln(os.Stderr, reason)
			}
		}
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, logger *slog.Logger) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errors.New("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}

	userRepo := postgres.NewUserRepository(db)
	tokens := auth.NewJWTProvider(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	m := manager{
		auth:  services.NewAuthService(userRepo, auth.NewBcryptHasher(cfg.BcryptCost), auth.NewPasswordPolicy(), tokens),
		users: services.NewUserService(userRepo),
		out:   out,
	}

	switch args[0] {
	case "createsuperuser":
		return m.createSuperuser(ctx, args[1:])
	case "promote":
		return m.promote(ctx, args[1:])
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

type manager struct {
	auth  domain.AuthService
	users domain.UserService
	out   io.Writer
}

func (m manager) createSuperuser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", os.Getenv("MANAGE_PASSWORD"), "account password (default $MANAGE_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := m.auth.Register(ctx, *username, *password)
	if err != nil {
		return err
	}
	user, err = m.users.Promote(ctx, user.Username, true, true)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "superuser %q created (id %d)\n", user.Username, user.ID)
	return nil
}

func (m manager) promote(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("promote", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	staff := fs.Bool("staff", true, "grant the staff role")
	superuser := fs.Bool("superuser", false, "grant the superuser role")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return domain.ErrMissingFields
	}

	user, err := m.users.Promote(ctx, *username, *staff, *superuser)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "%q: is_staff=%t is_superuser=%t\n", user.Username, user.IsStaff, user.IsSuperuser)
	return nil
}
