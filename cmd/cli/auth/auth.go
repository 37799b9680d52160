package auth

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/crucial707/asset-inventory/cmd/cli/client"
	"github.com/crucial707/asset-inventory/cmd/cli/config"
)

// InitAuth registers login and whoami on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd(), whoamiCmd())
}

func loginCmd() *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the inventory API",
		Long:  "Authenticate against the inventory API and store a token for subsequent commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
				Token   string `json:"token"`
			}
			status, err := client.New().Do(http.MethodPost, "/api/auth/login",
				map[string]string{"username": username, "password": password}, &resp)
			if err != nil {
				return err
			}
			if status != http.StatusOK || resp.Token == "" {
				return fmt.Errorf("login failed: %s", resp.Message)
			}

			if err := config.SaveToken(resp.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			fmt.Println("Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewAuthenticated()
			if err != nil {
				return err
			}

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
				User    struct {
					ID       int    `json:"id"`
					Username string `json:"username"`
					Email    string `json:"email"`
					Role     string `json:"role"`
				} `json:"user"`
			}
			status, err := c.Do(http.MethodGet, "/api/auth/me", nil, &resp)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("request failed: %s", resp.Message)
			}

			fmt.Printf("%s (id=%d, role=%s, email=%s)\n",
				resp.User.Username, resp.User.ID, resp.User.Role, resp.User.Email)
			return nil
		},
	}
}
