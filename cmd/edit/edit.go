// Package edit renames an income category
package edit

import (
	"context"

	"fjacquet/income-categories/cmd/root"
	"fjacquet/income-categories/internal/container"
	"fjacquet/income-categories/internal/models"

	"github.com/spf13/cobra"
)

var name string

// Cmd represents the edit command
var Cmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update an income category",
	Args:  cobra.ExactArgs(1),
	RunE:  root.Action(run),
}

func init() {
	Cmd.Flags().StringVarP(&name, "name", "n", "", "New name of the category")
	_ = Cmd.MarkFlagRequired("name")
}

func run(ctx context.Context, app *container.Container, cmd *cobra.Command, args []string) error {
	id, err := root.ParseID(args[0])
	if err != nil {
		return err
	}

	store := app.GetStore()
	store.SelectForEdit(id)
	if _, err := store.EditCategory(ctx, id, models.IncomeCategoryInput{Name: name}); err != nil {
		root.WriteFieldErrors(cmd.ErrOrStderr(), err, store.State().EditErrors)
		return err
	}
	return nil
}
