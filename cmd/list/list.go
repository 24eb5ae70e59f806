// Package list prints one page of income categories
package list

import (
	"context"

	"fjacquet/income-categories/cmd/root"
	"fjacquet/income-categories/internal/container"
	"fjacquet/income-categories/internal/report"

	"github.com/spf13/cobra"
)

var (
	page  int
	limit int
	name  string
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List income categories page by page",
	Long:  `List income categories, optionally filtered by name. The page size defaults to list.limit from the configuration.`,
	Args:  cobra.NoArgs,
	RunE:  root.Action(run),
}

func init() {
	Cmd.Flags().IntVarP(&page, "page", "p", 1, "Page to fetch")
	Cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Page size (default from configuration)")
	Cmd.Flags().StringVarP(&name, "name", "n", "", "Only categories whose name matches")
}

func run(ctx context.Context, app *container.Container, cmd *cobra.Command, args []string) error {
	store := app.GetStore()
	cats, err := store.FetchPage(ctx, page, limit, name)
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
