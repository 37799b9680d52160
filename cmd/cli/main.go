package main

import (
	"github.com/joho/godotenv"

	"github.com/crucial707/asset-inventory/cmd/cli/assets"
	"github.com/crucial707/asset-inventory/cmd/cli/auth"
	"github.com/crucial707/asset-inventory/cmd/cli/categories"
	"github.com/crucial707/asset-inventory/cmd/cli/locations"
	"github.com/crucial707/asset-inventory/cmd/cli/root"
	"github.com/crucial707/asset-inventory/cmd/cli/stats"
)

func main() {
	_ = godotenv.Load()

	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	assets.InitAssets(rootCmd)
	categories.InitCategories(rootCmd)
	locations.InitLocations(rootCmd)
	stats.InitStats(rootCmd)

	root.Execute()
}
