package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"todo-lists-api/internal/config"
	"todo-lists-api/internal/observability/logging"
)

type App struct {
	v          *viper.Viper
	configFile string
	envFile    string
}

func NewRootCmd() *cobra.Command {
	app := &App{v: config.New()}

	cmd := &cobra.Command{
		Use:          "todo-lists",
		Short:        "Todo lists REST backend",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Serve the API on :3004 with an in-memory store
  todo-lists serve

  # Serve from a local sqlite file
  todo-lists serve --store sqlite --sqlite-path ./lists.db

  # Inspect a running server
  todo-lists lists --server http://localhost:3004
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return config.ReadFiles(app.v, app.envFile, app.configFile)
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.configFile, "config", "", "Config file (default: ./todo-lists.{yaml,json,toml} if present)")
	pf.StringVar(&app.envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
	pf.String("log-level", "info", "Log level (debug|info|warn|error)")
	pf.String("log-format", "json", "Log format (json|text)")
	pf.String("store", config.DriverMemory, "Store driver (memory|postgres|sqlite)")
	pf.String("database-url", "", "PostgreSQL connection string (env DB_URL)")
	pf.String("sqlite-path", "todo-lists.db", "SQLite database file")

	bindFlag(app.v, "log.level", pf.Lookup("log-level"))
	bindFlag(app.v, "log.format", pf.Lookup("log-format"))
	bindFlag(app.v, "store.driver", pf.Lookup("store"))
	bindFlag(app.v, "store.database_url", pf.Lookup("database-url"))
	bindFlag(app.v, "store.sqlite_path", pf.Lookup("sqlite-path"))

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newMigrateCmd(app))
	cmd.AddCommand(newListsCmd(app))

	return cmd
}

// load resolves the layered configuration and builds the logger.
func (a *App) load(logOut io.Writer) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(a.v)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func bindFlag(v *viper.Viper, key string, f *pflag.Flag) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}
