// Command devtoken mints access tokens for local testing against the API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		userID     string
		employeeID string
		roleStr    string
		secret     string
		ttl        time.Duration
	)

	cmd := &cobra.Command{
		Use:          "devtoken",
		Short:        "Mint a signed access token for a user and role",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			if secret == "" {
				return fmt.Errorf("--secret is required (or set JWT_SECRET_KEY)")
			}
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be > 0")
			}

			role, err := user.ParseRole(roleStr)
			if err != nil {
				return fmt.Errorf("--role must be one of %v", user.RoleValues)
			}

			identity := user.Identity{UserID: userID, Role: role}
			if employeeID != "" {
				identity.EmployeeID = &employeeID
			}

			token, expiresAt, err := jwt.NewJWTService(secret, ttl.String()).GenerateAccessToken(identity)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID carried in the token")
	cmd.Flags().StringVar(&employeeID, "employee", "", "Employee ID carried in the token (optional)")
	cmd.Flags().StringVar(&roleStr, "role", string(user.RoleEmployee), "Caller role")
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET_KEY"), "HS256 signing secret")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	return cmd
}
