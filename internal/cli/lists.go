package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"todo-lists-api/internal/client"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show the todo lists of a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(app.v.GetString("client.server"))
			lists, err := c.ListSummaries(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), client.RenderSummaries(lists))
			return err
		},
	}

	cmd.PersistentFlags().String("server", client.DefaultServer, "Base URL of the todo lists server")
	bindFlag(app.v, "client.server", cmd.PersistentFlags().Lookup("server"))

	cmd.AddCommand(&cobra.Command{
		Use:   "show <list-id>",
		Short: "Show the items of one list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(app.v.GetString("client.server"))
			l, err := c.Get(cmd.Context(), args[0])
			if errors.Is(err, client.ErrNotFound) {
				return fmt.Errorf("%w: %s", err, args[0])
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), client.RenderList(l))
			return err
		},
	})

	return cmd
}
