package locations

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/crucial707/asset-inventory/cmd/cli/client"
	"github.com/crucial707/asset-inventory/cmd/cli/output"
	"github.com/crucial707/asset-inventory/internal/models"
)

// InitLocations registers the locations command group on the root command.
func InitLocations(rootCmd *cobra.Command) {
	locationsCmd := &cobra.Command{
		Use:   "locations",
		Short: "Manage locations",
	}

	locationsCmd.AddCommand(listCmd(), createCmd(), deleteCmd())
	rootCmd.AddCommand(locationsCmd)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List locations with asset counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewAuthenticated()
			if err != nil {
				return err
			}

			var resp struct {
				Success bool              `json:"success"`
				Message string            `json:"message"`
				Data    []models.Location `json:"data"`
			}
			code, err := c.Do(http.MethodGet, "/api/locations", nil, &resp)
			if err != nil {
				return err
			}
			if code != http.StatusOK {
				return fmt.Errorf("request failed: %s", resp.Message)
			}

			rows := make([][]interface{}, 0, len(resp.Data))
			for _, l := range resp.Data {
				rows = append(rows, []interface{}{l.ID, l.Name, deref(l.City), deref(l.Country), l.AssetCount})
			}
			output.RenderTable([]string{"ID", "Name", "City", "Country", "Assets"}, rows)
			return nil
		},
	}
}

func createCmd() *cobra.Command {
	var name, address, city, country string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("name is required")
			}
			c, err := client.NewAuthenticated()
			if err != nil {
				return err
			}

			payload := models.LocationInput{Name: name}
			if address != "" {
				payload.Address = &address
			}
			if city != "" {
				payload.City = &city
			}
			if country != "" {
				payload.Country = &country
			}

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
				Data    struct {
					ID int `json:"id"`
				} `json:"data"`
			}
			code, err := c.Do(http.MethodPost, "/api/locations", payload, &resp)
			if err != nil {
				return err
			}
			if code != http.StatusCreated {
				return fmt.Errorf("create failed: %s", resp.Message)
			}

			fmt.Printf("Location created with id %d\n", resp.Data.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "location name (required)")
	cmd.Flags().StringVar(&address, "address", "", "street address")
	cmd.Flags().StringVar(&city, "city", "", "city")
	cmd.Flags().StringVar(&country, "country", "", "country")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a location (assets keep their rows, unlinked)",
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
			code, err := c.Do(http.MethodDelete, "/api/locations/"+args[0], nil, &resp)
			if err != nil {
				return err
			}
			if code != http.StatusOK {
				return fmt.Errorf("delete failed: %s", resp.Message)
			}

			fmt.Println("Location deleted")
			return nil
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
