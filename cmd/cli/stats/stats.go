package stats

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/crucial707/asset-inventory/cmd/cli/client"
	"github.com/crucial707/asset-inventory/cmd/cli/output"
	"github.com/crucial707/asset-inventory/internal/models"
)

// InitStats registers the stats command on the root command.
func InitStats(rootCmd *cobra.Command) {
	rootCmd.AddCommand(statsCmd())
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show inventory summary statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewAuthenticated()
			if err != nil {
				return err
			}

			var resp struct {
				Success bool              `json:"success"`
				Message string            `json:"message"`
				Data    models.AssetStats `json:"data"`
			}
			code, err := c.Do(http.MethodGet, "/api/assets/stats/summary", nil, &resp)
			if err != nil {
				return err
			}
			if code != http.StatusOK {
				return fmt.Errorf("request failed: %s", resp.Message)
			}

			fmt.Printf("Total assets: %d\n\n", resp.Data.Total)

			statusRows := make([][]interface{}, 0, len(resp.Data.ByStatus))
			for _, s := range resp.Data.ByStatus {
				statusRows = append(statusRows, []interface{}{s.Status, s.Count})
			}
			output.RenderTable([]string{"Status", "Count"}, statusRows)

			categoryRows := make([][]interface{}, 0, len(resp.Data.ByCategory))
			for _, c := range resp.Data.ByCategory {
				categoryRows = append(categoryRows, []interface{}{c.Name, c.Count})
			}
			output.RenderTable([]string{"Category", "Count"}, categoryRows)
			return nil
		},
	}
}
