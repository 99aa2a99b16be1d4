//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"livevote/internal"
	"livevote/internal/controllers"
	"livevote/internal/live"
	"livevote/internal/models"
	"livevote/internal/providers"
	"livevote/internal/remote"
	"livevote/internal/services"
	"livevote/internal/storage"
	"livevote/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		models.NewStateStore,
		wire.Bind(new(models.StateStoreInterface), new(*models.StateStore)),
		wire.Bind(new(providers.StateGauges), new(*models.StateStore)),
		providers.NewMetricsProvider,
		providers.NewFragmentCacheProvider,

		remote.NewClient,
		storage.NewVoteStatusStore,
		services.NewVoteFlow,
		services.NewSyncService,
		services.NewAdminService,
		live.NewSSESource,
		wire.Bind(new(live.EventSource), new(*live.SSESource)),
		live.NewChannel,
		live.NewScheduler,

		controllers.NewBallotController,
		controllers.NewAdminController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
