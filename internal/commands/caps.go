package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/finlens-dev/finlens/internal/analytics"
	"github.com/finlens-dev/finlens/internal/caps"
	"github.com/finlens-dev/finlens/internal/gitops"
)

func newCapsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "caps",
		Short: "Manage monthly budget caps per category",
	}

	cmd.AddCommand(newCapsSuggestCommand())
	cmd.AddCommand(newCapsSetCommand())
	cmd.AddCommand(newCapsListCommand())

	return cmd
}

func newCapsSuggestCommand() *cobra.Command {
	var dir string
	var month string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest guardrailed caps from spending history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapsSuggest(dir, month)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "data directory")
	cmd.Flags().StringVar(&month, "month", "", `month to suggest for ("YYYY-MM", required)`)
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runCapsSuggest(dir, month string) error {
	e, err := openEnv(dir)
	if err != nil {
		return err
	}

	txns, err := e.ledger.Read()
	if err != nil {
		return err
	}

	store, err := caps.Open(e.kv)
	if err != nil {
		return err
	}
	prior := store.ForMonth(month)

	suggested := analytics.SuggestCaps(txns, month, prior, e.cfg.Analytics.GuardrailPct)
	if len(suggested) == 0 {
		fmt.Printf("No spending history up to %s; nothing to suggest.\n", month)
		return nil
	}

	categories := make([]string, 0, len(suggested))
	for c := range suggested {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Category", "Current cap", "Suggested"})
	for _, c := range categories {
		current := "-"
		if amount, ok := prior[c]; ok {
			current = analytics.FormatVND(amount)
		}
		t.AppendRow(table.Row{c, current, analytics.FormatVND(suggested[c])})
	}
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()

	fmt.Println("Confirm with: finlens caps set --month " + month + " --category <name> --amount <vnd>")
	return nil
}

func newCapsSetCommand() *cobra.Command {
	var dir string
	var month string
	var category string
	var amount int64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Confirm a cap for a category in a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapsSet(dir, month, category, amount)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "data directory")
	cmd.Flags().StringVar(&month, "month", "", `month ("YYYY-MM", required)`)
	cmd.Flags().StringVar(&category, "category", "", "parent category (required)")
	cmd.Flags().Int64Var(&amount, "amount", 0, "cap amount in VND (required)")
	_ = cmd.MarkFlagRequired("month")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runCapsSet(dir, month, category string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("cap amount must be non-negative, got %d", amount)
	}

	e, err := openEnv(dir)
	if err != nil {
		return err
	}

	store, err := caps.Open(e.kv)
	if err != nil {
		return err
	}
	if err := store.SetCap(month, category, amount); err != nil {
		return err
	}

	fmt.Printf("Cap for %s in %s set to %s\n", category, month, analytics.FormatVND(amount))

	if e.cfg.Git.AutoCommit && gitops.IsRepo(e.dir) {
		msg := fmt.Sprintf("caps: %s %s = %d", month, category, amount)
		if _, err := gitops.CommitAll(e.dir, msg, e.cfg.Git.AuthorName, e.cfg.Git.AuthorEmail); err != nil {
			fmt.Fprintf(os.Stderr, "warning: auto-commit failed: %v\n", err)
		}
	}
	return nil
}

func newCapsListCommand() *cobra.Command {
	var dir string
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List confirmed caps for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapsList(dir, month)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "data directory")
	cmd.Flags().StringVar(&month, "month", "", `month ("YYYY-MM", required)`)
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runCapsList(dir, month string) error {
	e, err := openEnv(dir)
	if err != nil {
		return err
	}

	store, err := caps.Open(e.kv)
	if err != nil {
		return err
	}

	byCategory := store.ForMonth(month)
	if len(byCategory) == 0 {
		fmt.Printf("No caps set for %s.\n", month)
		return nil
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Category", "Cap"})
	for _, c := range categories {
		t.AppendRow(table.Row{c, analytics.FormatVND(byCategory[c])})
	}
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
	return nil
}
