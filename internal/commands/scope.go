package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finlens-dev/finlens/internal/scope"
)

func newScopeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scope",
		Short: "Include or exclude categories from analytics",
	}

	cmd.AddCommand(newScopeModeCommand())
	cmd.AddCommand(newScopeToggleCommand())
	cmd.AddCommand(newScopeParentCommand("include-parent", "Include every child of a parent category"))
	cmd.AddCommand(newScopeParentCommand("exclude-parent", "Exclude every child of a parent category"))
	cmd.AddCommand(newScopeAllCommand("include-all", "Clear the active exclusion set"))
	cmd.AddCommand(newScopeAllCommand("exclude-all", "Exclude every known child category"))
	cmd.AddCommand(newScopeAllCommand("reset", "Reset the active set to nothing excluded"))
	cmd.AddCommand(newScopeStatusCommand())

	return cmd
}

func openScope(dir string) (*env, *scope.Store, error) {
	e, err := openEnv(dir)
	if err != nil {
		return nil, nil, err
	}
	store, err := scope.Open(e.kv, e.tax)
	if err != nil {
		return nil, nil, err
	}
	return e, store, nil
}

func newScopeModeCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "mode <global|per-month>",
		Short: "Switch the active exclusion namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openScope(dir)
			if err != nil {
				return err
			}
			if err := store.SetMode(scope.Mode(args[0])); err != nil {
				return err
			}
			fmt.Printf("Scope mode set to %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "data directory")
	return cmd
}

func newScopeToggleCommand() *cobra.Command {
	var dir string
	var month string

	cmd := &cobra.Command{
		Use:   "toggle <child>",
		Short: "Flip a child category in or out of analytics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openScope(dir)
			if err != nil {
				return err
			}
			if err := store.ToggleChild(args[0], month); err != nil {
				return err
			}
			if _, excluded := store.ExcludedSet(month)[args[0]]; excluded {
				fmt.Printf("%s excluded\n", args[0])
			} else {
				fmt.Printf("%s included\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "data directory")
	cmd.Flags().StringVar(&month, "month", "", `month ("YYYY-MM", required in per-month mode)`)
	return cmd
}

func newScopeParentCommand(use, short string) *cobra.Command {
	var dir string
	var month string
	include := strings.HasPrefix(use, "include")

	cmd := &cobra.Command{
		Use:   use + " <parent>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, store, err := openScope(dir)
			if err != nil {
				return err
			}
			parent := args[0]
			if e.tax.ChildrenOf(parent) == nil {
				return fmt.Errorf("unknown parent category %q", parent)
			}
			if include {
				err = store.IncludeParent(parent, month)
			} else {
				err = store.ExcludeParent(parent, month)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s applied to all children of %s\n", use, parent)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "data directory")
	cmd.Flags().StringVar(&month, "month", "", `month ("YYYY-MM", required in per-month mode)`)
	return cmd
}

func newScopeAllCommand(use, short string) *cobra.Command {
	var dir string
	var month string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, store, err := openScope(dir)
			if err != nil {
				return err
			}
			switch use {
			case "exclude-all":
				txns, err := e.ledger.Read()
				if err != nil {
					return err
				}
				if err := store.ExcludeAll(month, e.knownChildren(txns)); err != nil {
					return err
				}
			case "include-all":
				if err := store.IncludeAll(month); err != nil {
					return err
				}
			default:
				if err := store.Reset(month); err != nil {
					return err
				}
			}
			fmt.Printf("%s done\n", use)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "data directory")
	cmd.Flags().StringVar(&month, "month", "", `month ("YYYY-MM", required in per-month mode)`)
	return cmd
}

func newScopeStatusCommand() *cobra.Command {
	var dir string
	var month string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active mode and exclusion set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, store, err := openScope(dir)
			if err != nil {
				return err
			}

			fmt.Printf("Mode: %s\n", store.Mode())

			excluded := store.ExcludedSet(month)
			if len(excluded) == 0 {
				fmt.Println("Nothing excluded")
			} else {
				names := make([]string, 0, len(excluded))
				for c := range excluded {
					names = append(names, c)
				}
				sort.Strings(names)
				fmt.Printf("Excluded: %s\n", strings.Join(names, ", "))
			}

			txns, err := e.ledger.Read()
			if err != nil {
				return err
			}
			if len(txns) > 0 {
				children := observedChildren(txns)
				fmt.Printf("%d of %d observed categories included\n",
					store.IncludedCount(month, children), len(children))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "data directory")
	cmd.Flags().StringVar(&month, "month", "", `month ("YYYY-MM") to inspect in per-month mode`)
	return cmd
}
