package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/gjovanov/tickytack/internal/core/domain"
	"github.com/gjovanov/tickytack/internal/utils/accounting"
	"github.com/google/subcommands"
)

type trialBalanceCmd struct {
	scope
	start string
	end   string
	out   io.Writer
}

func (*trialBalanceCmd) Name() string     { return "trial-balance" }
func (*trialBalanceCmd) Synopsis() string { return "print the trial balance of an organization" }
func (*trialBalanceCmd) Usage() string {
	return `ledgerctl trial-balance -org <org_id> [-s <start_date> -e <end_date>]

  Without dates the stored account balances are printed. With both dates the
  posted entries dated inside the range are replayed.
`
}

func (c *trialBalanceCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.start, "s", "", "Start date (YYYY-MM-DD).")
	f.StringVar(&c.end, "e", "", "End date (YYYY-MM-DD).")
}

func (c *trialBalanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	ctx, err := c.context(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	var start, end *time.Time
	if c.start != "" || c.end != "" {
		if c.start == "" || c.end == "" {
			fmt.Fprintln(os.Stderr, "-s and -e must be given together")
			return subcommands.ExitUsageError
		}
		s, err := parseDate(c.start)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		e, err := parseDate(c.end)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		start, end = &s, &e
	}

	container, closeFn, err := open(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	rows, err := container.Reporting.TrialBalance(ctx, c.orgID, start, end)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	writeTrialBalance(out, rows)
	return subcommands.ExitSuccess
}

func writeTrialBalance(out io.Writer, rows []domain.TrialBalanceRow) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Code\tAccount\tType\tDebit\tCredit\t")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", row.Code, row.Name, row.AccountType, row.Debit.StringFixed(2), row.Credit.StringFixed(2))
	}
	debit, credit := accounting.TrialBalanceTotals(rows)
	fmt.Fprintf(w, "\tTotal\t\t%s\t%s\t\n", debit.StringFixed(2), credit.StringFixed(2))
	w.Flush()
}

type pnlCmd struct {
	scope
	start string
	end   string
	out   io.Writer
}

func (*pnlCmd) Name() string     { return "pnl" }
func (*pnlCmd) Synopsis() string { return "print the profit and loss statement for a period" }
func (*pnlCmd) Usage() string {
	return `ledgerctl pnl -org <org_id> -s <start_date> -e <end_date>

  Sums revenue and expense movements of posted entries inside the inclusive range.
`
}

func (c *pnlCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.start, "s", "", "Start date (YYYY-MM-DD, required).")
	f.StringVar(&c.end, "e", "", "End date (YYYY-MM-DD, required).")
}

func (c *pnlCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	ctx, err := c.context(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	start, err := parseDate(c.start)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	end, err := parseDate(c.end)
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

	report, err := container.Reporting.ProfitAndLoss(ctx, c.orgID, start, end)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	writeProfitAndLoss(out, report)
	return subcommands.ExitSuccess
}

func writeProfitAndLoss(out io.Writer, report *domain.ProfitAndLossReport) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Revenue\t\t")
	for _, row := range report.Revenue {
		fmt.Fprintf(w, "  %s\t%s\t\n", row.Name, row.Amount.StringFixed(2))
	}
	fmt.Fprintf(w, "Total revenue\t%s\t\n", report.TotalRevenue.StringFixed(2))
	fmt.Fprintln(w, "Expenses\t\t")
	for _, row := range report.Expenses {
		fmt.Fprintf(w, "  %s\t%s\t\n", row.Name, row.Amount.StringFixed(2))
	}
	fmt.Fprintf(w, "Total expenses\t%s\t\n", report.TotalExpenses.StringFixed(2))
	fmt.Fprintf(w, "Net income\t%s\t\n", report.NetIncome.StringFixed(2))
	w.Flush()
}
