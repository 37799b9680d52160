package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/crucial707/asset-inventory/internal/metrics"
	"github.com/crucial707/asset-inventory/internal/repo"
)

// Run starts a background cron that refreshes the inventory gauges from the
// stats query on the given cron spec (e.g. "@every 1m"). It runs once
// immediately so gauges are populated before the first tick. The returned stop
// function halts the cron.
func Run(assets *repo.AssetRepo, cronSpec string) (stop func(), err error) {
	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		stats, err := assets.Stats(ctx)
		if err != nil {
			slog.Error("scheduler: refresh inventory stats", "err", err)
			return
		}
		byStatus := make(map[string]int, len(stats.ByStatus))
		for _, s := range stats.ByStatus {
			byStatus[s.Status] = s.Count
		}
		metrics.SetInventory(stats.Total, byStatus)
	}

	c := cron.New()
	if _, err := c.AddFunc(cronSpec, refresh); err != nil {
		return nil, err
	}

	refresh()
	c.Start()
	slog.Info("scheduler: inventory gauge refresh started", "cron", cronSpec)

	return func() { c.Stop() }, nil
}
