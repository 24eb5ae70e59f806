// Package add creates an income category
package add

import (
	"context"

	"fjacquet/income-categories/cmd/root"
	"fjacquet/income-categories/internal/container"
	"fjacquet/income-categories/internal/models"

	"github.com/spf13/cobra"
)

var name string

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Create an income category",
	Args:  cobra.NoArgs,
	RunE:  root.Action(run),
}

func init() {
	Cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the new category")
	_ = Cmd.MarkFlagRequired("name")
}

func run(ctx context.Context, app *container.Container, cmd *cobra.Command, args []string) error {
	store := app.GetStore()
	err := store.AddCategory(ctx, models.IncomeCategoryInput{Name: name})
	if err != nil {
		root.WriteFieldErrors(cmd.ErrOrStderr(), err, store.State().AddErrors)
	}
	return err
}
