// Package cli implements the ledgerctl subcommands. Ledger commands run the same
// services as the HTTP server against the configured Postgres database.
package cli

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/gjovanov/tickytack/internal/core/services"
	portssvc "github.com/gjovanov/tickytack/internal/core/ports/services"
	"github.com/gjovanov/tickytack/internal/middleware"
	"github.com/gjovanov/tickytack/internal/platform/config"
	"github.com/gjovanov/tickytack/internal/repositories/database/pgsql"
	"github.com/gjovanov/tickytack/pkg/database"
	"github.com/google/subcommands"
)

const dateLayout = "2006-01-02"

// Commands lists every ledgerctl subcommand.
var Commands = []subcommands.Command{
	&postCmd{},
	&voidCmd{},
	&trialBalanceCmd{},
	&pnlCmd{},
	&tokenCmd{},
}

// Opener builds the service container a command runs against and a function releasing it.
type Opener func(ctx context.Context) (*portssvc.ServiceContainer, func(), error)

// OpenPostgres connects to PGSQL_URL and wires the services on top of it.
func OpenPostgres(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.StorageDriver != config.StoragePostgres {
		return nil, nil, fmt.Errorf("ledgerctl requires STORAGE_DRIVER=%s", config.StoragePostgres)
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, nil, err
	}
	container := services.NewServiceContainer(pgsql.NewRepositoryProvider(pool))
	return container, func() { database.ClosePgxPool(pool) }, nil
}

// open is replaced in tests.
var open Opener = OpenPostgres

// scope holds the organization and acting user shared by ledger commands.
type scope struct {
	orgID  string
	userID string
}

func (s *scope) setFlags(f *flag.FlagSet) {
	f.StringVar(&s.orgID, "org", "", "Organization ID (required).")
	f.StringVar(&s.userID, "user", "ledgerctl", "User ID recorded on changes.")
}

func (s *scope) context(ctx context.Context) (context.Context, error) {
	if s.orgID == "" {
		return nil, fmt.Errorf("-org is required")
	}
	ctx = middleware.WithUserID(ctx, s.userID)
	logger := slog.Default().With(slog.String("org_id", s.orgID), slog.String("user_id", s.userID))
	return middleware.WithLogger(ctx, logger), nil
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", raw)
	}
	return t, nil
}
