package assets

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/crucial707/asset-inventory/cmd/cli/client"
	"github.com/crucial707/asset-inventory/cmd/cli/output"
	"github.com/crucial707/asset-inventory/internal/models"
)

// InitAssets registers the assets command group on the root command.
func InitAssets(rootCmd *cobra.Command) {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage assets",
	}

	assetsCmd.AddCommand(
		listCmd(),
		getCmd(),
		createCmd(),
		deleteCmd(),
	)

	rootCmd.AddCommand(assetsCmd)
}

func listCmd() *cobra.Command {
	var status, categoryID, locationID, search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewAuthenticated()
			if err != nil {
				return err
			}

			q := url.Values{}
			if status != "" {
				q.Set("status", status)
			}
			if categoryID != "" {
				q.Set("category_id", categoryID)
			}
			if locationID != "" {
				q.Set("location_id", locationID)
			}
			if search != "" {
				q.Set("search", search)
			}
			path := "/api/assets"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var resp struct {
				Success bool           `json:"success"`
				Message string         `json:"message"`
				Count   int            `json:"count"`
				Data    []models.Asset `json:"data"`
			}
			code, err := c.Do(http.MethodGet, path, nil, &resp)
			if err != nil {
				return err
			}
			if code != http.StatusOK {
				return fmt.Errorf("request failed: %s", resp.Message)
			}

			if asJSON {
				b, _ := json.MarshalIndent(resp.Data, "", "  ")
				fmt.Println(string(b))
				return nil
			}

			rows := make([][]interface{}, 0, len(resp.Data))
			for _, a := range resp.Data {
				rows = append(rows, []interface{}{
					a.ID, a.AssetTag, a.Name, a.Status,
					strOrDash(a.CategoryName), strOrDash(a.LocationName), strOrDash(a.AssignedToName),
				})
			}
			output.RenderTable([]string{"ID", "Tag", "Name", "Status", "Category", "Location", "Assigned To"}, rows)
			fmt.Printf("%d asset(s)\n", resp.Count)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (available, in_use, maintenance, retired)")
	cmd.Flags().StringVar(&categoryID, "category", "", "filter by category id")
	cmd.Flags().StringVar(&locationID, "location", "", "filter by location id")
	cmd.Flags().StringVar(&search, "search", "", "substring match on name, tag, or serial number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")

	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one asset with its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewAuthenticated()
			if err != nil {
				return err
			}

			var resp struct {
				Success bool               `json:"success"`
				Message string             `json:"message"`
				Data    models.AssetDetail `json:"data"`
			}
			code, err := c.Do(http.MethodGet, "/api/assets/"+args[0], nil, &resp)
			if err != nil {
				return err
			}
			if code != http.StatusOK {
				return fmt.Errorf("request failed: %s", resp.Message)
			}

			b, _ := json.MarshalIndent(resp.Data, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
}

func createCmd() *cobra.Command {
	var input models.AssetInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewAuthenticated()
			if err != nil {
				return err
			}

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
				Data    struct {
					ID int `json:"id"`
				} `json:"data"`
			}
			code, err := c.Do(http.MethodPost, "/api/assets", input, &resp)
			if err != nil {
				return err
			}
			if code != http.StatusCreated {
				return fmt.Errorf("create failed: %s", resp.Message)
			}

			fmt.Printf("Asset created with id %d\n", resp.Data.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.AssetTag, "tag", "", "unique asset tag (required)")
	cmd.Flags().StringVar(&input.Name, "name", "", "asset name (required)")
	cmd.Flags().StringVar(&input.Status, "status", "", "status (default available)")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an asset and its history",
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
			code, err := c.Do(http.MethodDelete, "/api/assets/"+args[0], nil, &resp)
			if err != nil {
				return err
			}
			if code != http.StatusOK {
				return fmt.Errorf("delete failed: %s", resp.Message)
			}

			fmt.Println("Asset deleted")
			return nil
		},
	}
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
