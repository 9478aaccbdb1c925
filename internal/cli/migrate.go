package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"todo-lists-api/internal/store"
)

func newMigrateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the SQL store schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(st *store.Store, logger *slog.Logger) error {
				return st.MigrateUp(cmd.Context(), logger)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(st *store.Store, logger *slog.Logger) error {
				return st.MigrateDown(cmd.Context(), logger)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, app, func(st *store.Store, _ *slog.Logger) error {
				status, err := st.MigrationStatus(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), renderStatus(status))
				return err
			})
		},
	})

	return cmd
}

func withStore(cmd *cobra.Command, app *App, fn func(st *store.Store, logger *slog.Logger) error) error {
	cfg, logger, err := app.load(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	st, err := store.Open(cmd.Context(), cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if st.Migrator == nil {
		return fmt.Errorf("%w: %s", store.ErrNoMigrations, st.Driver)
	}
	return fn(st, logger)
}

func renderStatus(status []*goose.MigrationStatus) string {
	rows := make([][]string, 0, len(status))
	for _, s := range status {
		applied := "-"
		if !s.AppliedAt.IsZero() {
			applied = s.AppliedAt.Local().Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []string{
			strconv.FormatInt(s.Source.Version, 10),
			string(s.State),
			applied,
			s.Source.Path,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("VERSION", "STATE", "APPLIED AT", "FILE").
		Rows(rows...).
		String()
}
