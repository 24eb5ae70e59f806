// Package remove deletes income categories
package remove

import (
	"context"

	"fjacquet/income-categories/cmd/root"
	"fjacquet/income-categories/internal/container"
	"fjacquet/income-categories/internal/report"

	"github.com/spf13/cobra"
)

var (
	refresh bool
	page    int
	limit   int
	name    string
)

// Cmd represents the delete command
var Cmd = &cobra.Command{
	Use:     "delete <id> [id...]",
	Aliases: []string{"rm"},
	Short:   "Delete one or more income categories",
	Long: `Delete income categories. Several ids are removed in a single batch request.
With --refresh the given page is loaded first and re-listed afterwards, stepping
back a page when the deletion emptied it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: root.Action(run),
}

func init() {
	Cmd.Flags().BoolVar(&refresh, "refresh", false, "Load the page before deleting and list it again afterwards")
	Cmd.Flags().IntVarP(&page, "page", "p", 1, "Page shown with --refresh")
	Cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Page size with --refresh (default from configuration)")
	Cmd.Flags().StringVarP(&name, "name", "n", "", "Name filter with --refresh")
}

func run(ctx context.Context, app *container.Container, cmd *cobra.Command, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := root.ParseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	store := app.GetStore()
	if refresh {
		if _, err := store.FetchPage(ctx, page, limit, name); err != nil {
			return err
		}
	}

	if _, err := store.DeleteCategory(ctx, ids...); err != nil {
		return err
	}
	if !refresh {
		return nil
	}

	st := store.State()
	cats, err := store.FetchPage(ctx, st.CurrentPage, st.Limit, st.QName)
	if err != nil {
		return err
	}
	gen := report.NewGenerator(app.GetLogger())
	if err := gen.WriteCategories(cmd.OutOrStdout(), cats, root.OutputFormat()); err != nil {
		return err
	}
	if root.OutputFormat() == "table" {
		return gen.WritePageFooter(cmd.OutOrStdout(), store.State())
	}
	return nil
}
