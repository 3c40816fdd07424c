package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gjovanov/tickytack/internal/middleware"
	"github.com/gjovanov/tickytack/internal/platform/config"
	"github.com/google/subcommands"
)

type tokenCmd struct {
	userID string
	ttl    time.Duration
	out    io.Writer
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "mint a bearer token for the HTTP API" }
func (*tokenCmd) Usage() string {
	return `ledgerctl token -user <user_id> [-ttl 1h]

  Signs a token with JWT_SECRET and JWT_ISSUER from the environment.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.userID, "user", "", "User ID placed in the token subject (required).")
	f.DurationVar(&c.ttl, "ttl", time.Hour, "Token lifetime.")
}

func (c *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	if c.userID == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		return subcommands.ExitUsageError
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	token, err := middleware.GenerateToken(cfg.JWTSecret, cfg.JWTIssuer, c.userID, c.ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(out, token)
	return subcommands.ExitSuccess
}
