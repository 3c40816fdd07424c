package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gjovanov/tickytack/internal/core/domain"
	portssvc "github.com/gjovanov/tickytack/internal/core/ports/services"
	"github.com/google/subcommands"
)

type postCmd struct {
	scope
	out io.Writer
}

func (*postCmd) Name() string     { return "post" }
func (*postCmd) Synopsis() string { return "post a draft journal entry" }
func (*postCmd) Usage() string {
	return `ledgerctl post -org <org_id> [-user <user_id>] <entry_id>

  Checks the entry balances within 0.01 and applies it to account balances.
`
}

func (c *postCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *postCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runTransition(ctx, &c.scope, f, c.out, func(svc portssvc.LedgerSvcFacade) transition {
		return svc.PostEntry
	})
}

type voidCmd struct {
	scope
	out io.Writer
}

func (*voidCmd) Name() string     { return "void" }
func (*voidCmd) Synopsis() string { return "void a posted journal entry" }
func (*voidCmd) Usage() string {
	return `ledgerctl void -org <org_id> [-user <user_id>] <entry_id>

  Reverses the entry's effect on account balances.
`
}

func (c *voidCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *voidCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runTransition(ctx, &c.scope, f, c.out, func(svc portssvc.LedgerSvcFacade) transition {
		return svc.VoidEntry
	})
}

type transition func(ctx context.Context, orgID, entryID, userID string) (*domain.JournalEntry, error)

func runTransition(ctx context.Context, s *scope, f *flag.FlagSet, out io.Writer, pick func(portssvc.LedgerSvcFacade) transition) subcommands.ExitStatus {
	if out == nil {
		out = os.Stdout
	}
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exactly one entry ID is required")
		return subcommands.ExitUsageError
	}
	ctx, err := s.context(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	container, closeFn, err := open(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	entry, err := pick(container.Ledger)(ctx, s.orgID, f.Arg(0), s.userID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(out, "%s %s %s\n", entry.EntryNumber, entry.EntryID, entry.Status)
	return subcommands.ExitSuccess
}
