package commands

import (
	"context"
	"fmt"
	"time"

	authsvc "github.com/Kapilrajreddy/youtube-api/internal/api/auth/service"
	userssvc "github.com/Kapilrajreddy/youtube-api/internal/api/users/service"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token <username>",
	Short: "Issue a bearer token for a user",
	Long: `Sign an access token for an existing user with JWT_SECRET.

Examples:
  admin token alice
  admin token alice --ttl 1h`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db *mongo.Database) error {
			users, err := userssvc.NewUserService()
			if err != nil {
				return err
			}
			user, err := users.FindByUsername(ctx, args[0])
			if err != nil {
				return fmt.Errorf("user %s: %w", args[0], err)
			}

			cfg := global.MongoDB_ServerConfig
			ttl := cfg.JwtTTL
			if tokenTTL > 0 {
				ttl = tokenTTL
			}
			token, err := authsvc.NewTokenService(cfg.JwtSecret, ttl).IssueToken(user.ID, user.Username)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		})
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime, defaults to JWT_TTL")
	rootCmd.AddCommand(tokenCmd)
}
