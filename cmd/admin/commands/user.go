package commands

import (
	"context"
	"encoding/json"
	"fmt"

	usersdto "github.com/Kapilrajreddy/youtube-api/internal/api/users/dto"
	userssvc "github.com/Kapilrajreddy/youtube-api/internal/api/users/service"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

var userInput usersdto.UserCreateInput

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Long: `Create a user with an empty watch history.

Examples:
  admin user create --username alice --full-name "Alice Doe" --email alice@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db *mongo.Database) error {
			if err := global.Validate.Struct(userInput); err != nil {
				return fmt.Errorf("invalid user: %w", err)
			}
			users, err := userssvc.NewUserService()
			if err != nil {
				return err
			}
			user, err := users.Create(ctx, userInput)
			if err != nil {
				return err
			}
			if jsonOutput {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", user.Username, user.ID.Hex())
			return nil
		})
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&userInput.Username, "username", "", "Username (lowercased)")
	f.StringVar(&userInput.FullName, "full-name", "", "Display name")
	f.StringVar(&userInput.Email, "email", "", "Email address")
	f.StringVar(&userInput.AvatarURL, "avatar-url", "", "Avatar image URL")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("full-name")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
