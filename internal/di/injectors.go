//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"streakd/internal"
	"streakd/internal/badge"
	"streakd/internal/bridge"
	"streakd/internal/controllers"
	"streakd/internal/explorer"
	"streakd/internal/leetcode"
	"streakd/internal/models"
	"streakd/internal/poller"
	"streakd/internal/providers"
	"streakd/internal/reminder"
	"streakd/internal/services"
	"streakd/internal/structures"
	"streakd/internal/tracker"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewClockProvider,

		models.NewStateStore,
		leetcode.NewClient,
		badge.NewLogRenderer,
		badge.NewController,
		services.NewTrackerService,
		poller.NewPoller,
		reminder.NewNotifier,
		reminder.NewScheduler,
		bridge.NewTokenDetector,
		bridge.NewBridge,
		explorer.NewExplorer,
		tracker.NewZstdCompressor,
		tracker.NewFileManager,
		tracker.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
