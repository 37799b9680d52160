package categories

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/crucial707/asset-inventory/cmd/cli/client"
	"github.com/crucial707/asset-inventory/cmd/cli/output"
	"github.com/crucial707/asset-inventory/internal/models"
)

// InitCategories registers the categories command group on the root command.
func InitCategories(rootCmd *cobra.Command) {
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}

	categoriesCmd.AddCommand(listCmd(), createCmd(), deleteCmd())
	rootCmd.AddCommand(categoriesCmd)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories with asset counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewAuthenticated()
			if err != nil {
				return err
			}

			var resp struct {
				Success bool              `json:"success"`
				Message string            `json:"message"`
				Data    []models.Category `json:"data"`
			}
			code, err := c.Do(http.MethodGet, "/api/categories", nil, &resp)
			if err != nil {
				return err
			}
			if code != http.StatusOK {
				return fmt.Errorf("request failed: %s", resp.Message)
			}

			rows := make([][]interface{}, 0, len(resp.Data))
			for _, cat := range resp.Data {
				desc := "-"
				if cat.Description != nil {
					desc = *cat.Description
				}
				rows = append(rows, []interface{}{cat.ID, cat.Name, desc, cat.AssetCount})
			}
			output.RenderTable([]string{"ID", "Name", "Description", "Assets"}, rows)
			return nil
		},
	}
}

func createCmd() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("name is required")
			}
			c, err := client.NewAuthenticated()
			if err != nil {
				return err
			}

			payload := models.CategoryInput{Name: name}
			if description != "" {
				payload.Description = &description
			}

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
				Data    struct {
					ID int `json:"id"`
				} `json:"data"`
			}
			code, err := c.Do(http.MethodPost, "/api/categories", payload, &resp)
			if err != nil {
				return err
			}
			if code != http.StatusCreated {
				return fmt.Errorf("create failed: %s", resp.Message)
			}

			fmt.Printf("Category created with id %d\n", resp.Data.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "category name (required)")
	cmd.Flags().StringVar(&description, "description", "", "category description")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a category (assets keep their rows, unlinked)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewAuthenticated()
			if err != nil {
				return err
			}

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			code, err := c.Do(http.MethodDelete, "/api/categories/"+args[0], nil, &resp)
			if err != nil {
				return err
			}
			if code != http.StatusOK {
				return fmt.Errorf("delete failed: %s", resp.Message)
			}

			fmt.Println("Category deleted")
			return nil
		},
	}
}
