// Package commands implements the videotube admin CLI.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kapilrajreddy/youtube-api/internal/bootstrap"
	"github.com/Kapilrajreddy/youtube-api/internal/database"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	envFile    string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "VideoTube maintenance commands",
	Long: `Maintenance commands for the VideoTube API database.

Configuration is read the same way the server reads it: config/env/<GO_ENV>.env,
or the file given with --env, then the process environment.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file to load instead of config/env/<GO_ENV>.env")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// withDatabase connects, applies the schema and registers collections before fn.
func withDatabase(ctx context.Context, fn func(ctx context.Context, db *mongo.Database) error) error {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	_, db, err := bootstrap.Init(ctx, files...)
	if err != nil {
		return err
	}
	defer func() { _ = database.CloseInstance(global.MongoDB_Session) }()
	return fn(ctx, db)
}
