// Package show prints a single income category
package show

import (
	"context"

	"fjacquet/income-categories/cmd/root"
	"fjacquet/income-categories/internal/container"
	"fjacquet/income-categories/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the show command
var Cmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one income category",
	Args:  cobra.ExactArgs(1),
	RunE:  root.Action(run),
}

func run(ctx context.Context, app *container.Container, cmd *cobra.Command, args []string) error {
	id, err := root.ParseID(args[0])
	if err != nil {
		return err
	}

	store := app.GetStore()
	store.SelectForView(id)
	item, err := store.FetchOne(ctx, id)
	if err != nil {
		return err
	}
	return report.NewGenerator(app.GetLogger()).WriteCategory(cmd.OutOrStdout(), item, root.OutputFormat())
}
