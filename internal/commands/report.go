package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/finlens-dev/finlens/internal/analytics"
	"github.com/finlens-dev/finlens/internal/scope"
)

func newReportCommand() *cobra.Command {
	var dir string
	var month string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show monthly income/expense/balance and per-category breakdowns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(dir, month)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "data directory")
	cmd.Flags().StringVar(&month, "month", "", `focus month ("YYYY-MM") for the category breakdown`)

	return cmd
}

func runReport(dir, month string) error {
	e, err := openEnv(dir)
	if err != nil {
		return err
	}

	txns, err := e.ledger.Read()
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		fmt.Println("No transactions imported yet. Run `finlens import` first.")
		return nil
	}

	scopeStore, err := scope.Open(e.kv, e.tax)
	if err != nil {
		return err
	}
	excluded := scopeStore.ExcludedSet(month)

	series := analytics.AggregateByMonth(txns, excluded)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Month", "Income", "Expense", "Balance"})
	for _, s := range series {
		t.AppendRow(table.Row{
			s.Month,
			analytics.FormatVND(s.Income),
			analytics.FormatVND(s.Expense),
			analytics.FormatVND(s.Balance),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()

	for _, s := range series {
		if s.Income == 0 {
			fmt.Printf("note: %s has no income; planning views assume net %s\n",
				s.Month, analytics.FormatVND(e.cfg.Analytics.DefaultNet))
		}
	}

	if month == "" {
		return nil
	}

	breakdown := analytics.ParentBreakdown(txns, month, excluded)
	if len(breakdown) == 0 {
		fmt.Printf("\nNo expenses in %s.\n", month)
		return nil
	}

	fmt.Printf("\nExpenses by category for %s:\n", month)
	bt := table.NewWriter()
	bt.SetOutputMirror(os.Stdout)
	bt.AppendHeader(table.Row{"Category", "Spent"})
	for _, nv := range breakdown {
		bt.AppendRow(table.Row{nv.Name, analytics.FormatVND(nv.Value)})
	}
	bt.SetStyle(table.StyleRounded)
	bt.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	bt.Render()

	children := observedChildren(txns)
	fmt.Printf("%d of %d categories included in analytics\n",
		scopeStore.IncludedCount(month, children), len(children))
	return nil
}
