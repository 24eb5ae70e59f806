// Package lookup prints the unpaginated income category list
package lookup

import (
	"context"

	"fjacquet/income-categories/cmd/root"
	"fjacquet/income-categories/internal/container"
	"fjacquet/income-categories/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the lookup command
var Cmd = &cobra.Command{
	Use:   "lookup",
	Short: "Print every income category (for pickers and scripts)",
	Args:  cobra.NoArgs,
	RunE:  root.Action(run),
}

func run(ctx context.Context, app *container.Container, cmd *cobra.Command, args []string) error {
	cats, err := app.GetStore().FetchCategoryList(ctx)
	if err != nil {
		return err
	}
	return report.NewGenerator(app.GetLogger()).WriteCategories(cmd.OutOrStdout(), cats, root.OutputFormat())
}
