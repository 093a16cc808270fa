package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/config"
	"github.com/abhisek/quizdrill/internal/library"
	"github.com/abhisek/quizdrill/internal/logging"
	"github.com/abhisek/quizdrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizdrill",
	Short: "Drill a question bank until every question sticks",
	Long: "quizdrill imports a question bank from a GBK delimited text file or a spreadsheet\n" +
		"and runs practice sessions that keep serving a question until it has been\n" +
		"answered correctly enough times in a row.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZDRILL_DB env var)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(thresholdCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZDRILL_DB (env or .env), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// appEnv is everything a command needs to work on the persisted bank.
type appEnv struct {
	cfg     *config.Config
	log     zerolog.Logger
	lib     *library.Library
	closers []io.Closer
}

func (e *appEnv) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
}

// openEnv loads configuration, sets up logging and opens the library over
// the configured backend. logOut receives log lines unless a log file is
// configured.
func openEnv(cmd *cobra.Command, logOut io.Writer) (*appEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if enc, err := cmd.Flags().GetString("encoding"); err == nil && enc != "" {
		cfg.Encoding = enc
	}

	env := &appEnv{cfg: cfg}
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		env.closers = append(env.closers, f)
		logOut = f
	}
	env.log = logging.Setup(logOut, cfg.Log.Level, cfg.Log.Format)

	ctx := logging.IntoContext(cmdContext(cmd), env.log)
	cmd.SetContext(ctx)

	repo, err := openRepo(cmd, env)
	if err != nil {
		env.Close()
		return nil, err
	}

	env.lib = library.Open(ctx, repo, library.Options{
		Encoding:    cfg.Encoding,
		GraceDelay:  cfg.GraceDelay,
		MetricsFile: cfg.MetricsFile,
		Log:         env.log,
	})
	return env, nil
}

func openRepo(cmd *cobra.Command, env *appEnv) (*store.Repo, error) {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if env.cfg.Backend == config.BackendRedis {
		rdb, err := store.NewRedisClient(ctx, env.cfg.RedisURL, log)
		if err != nil {
			return nil, err
		}
		kv := store.NewRedisKV(rdb, env.cfg.RedisPrefix)
		env.closers = append(env.closers, kv)
		return store.NewRepo(kv), nil
	}

	dbPath, err := resolveDBPath(cmd, env.cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	env.closers = append(env.closers, st)
	log.Debug().Str("path", dbPath).Msg("sqlite store opened")
	return store.NewRepo(st.KV()), nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
