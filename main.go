package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/income-categories/cmd/add"
	"fjacquet/income-categories/cmd/edit"
	"fjacquet/income-categories/cmd/list"
	"fjacquet/income-categories/cmd/lookup"
	"fjacquet/income-categories/cmd/remove"
	"fjacquet/income-categories/cmd/root"
	"fjacquet/income-categories/cmd/show"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(lookup.Cmd)
	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(show.Cmd)
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(edit.Cmd)
	root.Cmd.AddCommand(remove.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
