package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/teckbook/teckbook-backend/internal/config"
	"github.com/teckbook/teckbook-backend/internal/database"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/logging"
	"github.com/teckbook/teckbook-backend/internal/models"
	"github.com/teckbook/teckbook-backend/internal/services"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

// opener returns the configuration and a database connection for one command.
// Commands close the connection when they finish.
type opener func() (*config.Config, *gorm.DB, error)

func main() {
	logging.Setup()
	newApp(openDB).RunAndExitOnError()
}

func newApp(open opener) *cli.App {
	app := &cli.App{
		Name:  "teckadmin",
		Usage: "operator tool for the TeckBook backend",
	}
	accountFlags := []cli.Flag{
		&cli.StringFlag{Name: "email", Required: true},
		&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"TECKADMIN_PASSWORD"}},
		&cli.StringFlag{Name: "first-name", Required: true},
		&cli.StringFlag{Name: "last-name"},
	}
	app.Commands = []*cli.Command{
		{
			Name:   "migrate",
			Usage:  "create or update database tables and seed default settings",
			Action: func(cctx *cli.Context) error { return runMigrate(cctx, open) },
		},
		{
			Name:   "create-admin",
			Usage:  "create an administrator account",
			Flags:  accountFlags,
			Action: func(cctx *cli.Context) error { return runCreateAdmin(cctx, open) },
		},
		{
			Name:  "create-account",
			Usage: "create a student or professor account",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: "role", Value: string(models.RoleStudent), Usage: "STUDENT or PROFESSOR"},
			}, accountFlags...),
			Action: func(cctx *cli.Context) error { return runCreateAccount(cctx, open) },
		},
		{
			Name:  "sweep-logs",
			Usage: "delete system logs older than the retention window",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "days", Usage: "retention in days (defaults to LOG_RETENTION_DAYS)"},
			},
			Action: func(cctx *cli.Context) error { return runSweepLogs(cctx, open) },
		},
	}
	return app
}

func openDB() (*config.Config, *gorm.DB, error) {
	cfg := config.Load()
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func runMigrate(cctx *cli.Context, open opener) error {
	_, db, err := open()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if err := services.NewSettingsService(db).Seed(); err != nil {
		return fmt.Errorf("seeding settings failed: %w", err)
	}
	fmt.Fprintln(cctx.App.Writer, "migrations applied")
	return nil
}

func runCreateAdmin(cctx *cli.Context, open opener) error {
	return createAccount(cctx, open, models.RoleAdministrator)
}

func runCreateAccount(cctx *cli.Context, open opener) error {
	role := models.Role(strings.ToUpper(cctx.String("role")))
	if role != models.RoleStudent && role != models.RoleProfessor {
		return cli.Exit("role must be STUDENT or PROFESSOR", 1)
	}
	return createAccount(cctx, open, role)
}

func createAccount(cctx *cli.Context, open opener, role models.Role) error {
	_, db, err := open()
	if err != nil {
		return err
	}
	defer database.Close(db)

	accounts := services.NewAccountService(db, services.NewAuditService(db))
	summary, err := accounts.Create(&dto.CreateAccountRequest{
		Email:     cctx.String("email"),
		Password:  cctx.String("password"),
		FirstName: cctx.String("first-name"),
		LastName:  cctx.String("last-name"),
	}, role)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintf(cctx.App.Writer, "created %s account %d (%s)\n", summary.Role, summary.ID, summary.Email)
	return nil
}

func runSweepLogs(cctx *cli.Context, open opener) error {
	cfg, db, err := open()
	if err != nil {
		return err
	}
	defer database.Close(db)

	days := cctx.Int("days")
	if days <= 0 {
		days = cfg.LogRetentionDays
	}
	deleted, err := logging.Sweep(db, days, time.Now())
	if err != nil {
		return err
	}
	slog.Info("system logs swept", "deleted", deleted, "retention_days", days)
	fmt.Fprintf(cctx.App.Writer, "deleted %d log rows\n", deleted)
	return nil
}
