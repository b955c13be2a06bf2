// Package cmd wires the revision engine into a small CLI used for local
// development and support tooling. The production API layer links the
// engine directly; these commands operate on a local SQLite database.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/moussahe/schoolaris-revision/internal/llm"
	"github.com/moussahe/schoolaris-revision/internal/revision"
	"github.com/moussahe/schoolaris-revision/internal/store"
	"github.com/moussahe/schoolaris-revision/internal/tutor"
)

var rootCmd = &cobra.Command{
	Use:   "schoolaris-revision",
	Short: "Spaced repetition engine for Schoolaris weak areas",
	Long: "Schoolaris revision engine — schedules re-tests of detected weak areas\n" +
		"with SM-2 spaced repetition and AI-generated questions.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SCHOOLARIS_DB)")
	rootCmd.PersistentFlags().String("child", "", "Child ID to operate on")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

func childID(cmd *cobra.Command) (string, error) {
	child, _ := cmd.Flags().GetString("child")
	if child == "" {
		return "", fmt.Errorf("--child is required")
	}
	return child, nil
}

// openService builds a Service over the local database. When withTutor is
// set, an LLM provider is required in the environment; otherwise the
// service runs tutor-less and only answers read/sync operations.
func openService(cmd *cobra.Command, withTutor bool) (*revision.Service, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	logger, err := newLogger(cmd)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	var t tutor.Tutor
	if withTutor {
		provider, err := llm.NewProviderFromEnv(cmd.Context(), logger)
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("LLM provider not configured: %w", err)
		}
		t = tutor.New(provider, tutor.DefaultConfig())
	}

	svc := revision.New(st, t, nil, revision.ConfigFromEnv(), logger)
	cleanup := func() {
		_ = logger.Sync()
		_ = st.Close()
	}
	return svc, cleanup, nil
}
