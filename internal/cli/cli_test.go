package cli

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/gjovanov/tickytack/internal/core/domain"
	portssvc "github.com/gjovanov/tickytack/internal/core/ports/services"
	"github.com/gjovanov/tickytack/internal/core/services"
	"github.com/gjovanov/tickytack/internal/dto"
	"github.com/gjovanov/tickytack/internal/repositories/memory"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrg = "org-1"

// useMemoryLedger points the commands at a fresh in-memory ledger seeded with a cash sale draft.
func useMemoryLedger(t *testing.T) (*portssvc.ServiceContainer, *domain.JournalEntry) {
	t.Helper()
	container := services.NewServiceContainer(memory.NewStore().RepositoryProvider())
	previous := open
	open = func(context.Context) (*portssvc.ServiceContainer, func(), error) {
		return container, func() {}, nil
	}
	t.Cleanup(func() { open = previous })

	ctx := context.Background()
	cash, err := container.Account.CreateAccount(ctx, testOrg, dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}, "seed")
	require.NoError(t, err)
	sales, err := container.Account.CreateAccount(ctx, testOrg, dto.CreateAccountRequest{Code: "4000", Name: "Sales", AccountType: domain.Revenue}, "seed")
	require.NoError(t, err)

	entry, err := container.Ledger.CreateDraftEntry(ctx, testOrg, dto.CreateJournalEntryRequest{
		Date:        time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Lines: []dto.CreateJournalEntryLineRequest{
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: sales.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}, "seed")
	require.NoError(t, err)
	return container, entry
}

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return cmd.Execute(context.Background(), f)
}

func TestPostThenVoid(t *testing.T) {
	container, entry := useMemoryLedger(t)

	var out bytes.Buffer
	status := run(t, &postCmd{out: &out}, "-org", testOrg, "-user", "alice", entry.EntryID)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "JE-0001 "+entry.EntryID+" posted\n", out.String())

	posted, err := container.Ledger.GetEntryByID(context.Background(), testOrg, entry.EntryID)
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, posted.Status)

	status = run(t, &postCmd{out: &out}, "-org", testOrg, entry.EntryID)
	assert.Equal(t, subcommands.ExitFailure, status)

	out.Reset()
	status = run(t, &voidCmd{out: &out}, "-org", testOrg, entry.EntryID)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "voided")
}

func TestTransitionUsage(t *testing.T) {
	useMemoryLedger(t)

	assert.Equal(t, subcommands.ExitUsageError, run(t, &postCmd{}, "-org", testOrg))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &voidCmd{}, "some-entry"))
}

func TestTrialBalance(t *testing.T) {
	_, entry := useMemoryLedger(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &postCmd{out: &bytes.Buffer{}}, "-org", testOrg, entry.EntryID))

	var out bytes.Buffer
	require.Equal(t, subcommands.ExitSuccess, run(t, &trialBalanceCmd{out: &out}, "-org", testOrg))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "Cash")
	assert.Contains(t, lines[2], "Sales")
	assert.Contains(t, lines[3], "100.00")

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &trialBalanceCmd{out: &out}, "-org", testOrg, "-s", "2024-02-01", "-e", "2024-02-29"))
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 2)

	assert.Equal(t, subcommands.ExitUsageError, run(t, &trialBalanceCmd{}, "-org", testOrg, "-s", "2024-02-01"))
}

func TestProfitAndLoss(t *testing.T) {
	_, entry := useMemoryLedger(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &postCmd{out: &bytes.Buffer{}}, "-org", testOrg, entry.EntryID))

	var out bytes.Buffer
	require.Equal(t, subcommands.ExitSuccess, run(t, &pnlCmd{out: &out}, "-org", testOrg, "-s", "2024-01-01", "-e", "2024-01-31"))
	assert.Contains(t, out.String(), "Sales")
	assert.Regexp(t, `Net income\s+100\.00`, out.String())

	assert.Equal(t, subcommands.ExitUsageError, run(t, &pnlCmd{}, "-org", testOrg, "-s", "2024-01-01"))
}

func TestToken(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "cli-secret")

	var out bytes.Buffer
	require.Equal(t, subcommands.ExitSuccess, run(t, &tokenCmd{out: &out}, "-user", "alice"))
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "."), 3)

	assert.Equal(t, subcommands.ExitUsageError, run(t, &tokenCmd{}))
}
