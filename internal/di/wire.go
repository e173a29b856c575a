//go:build wireinject

package di

import (
	"github.com/google/wire"

	"kasubs/internal/adapter/logging"
	"kasubs/internal/app"
	"kasubs/internal/config"
	"kasubs/internal/domain/ports"
	"kasubs/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp(overrides config.Overrides) (*app.App, func(), error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		provideTreeStore,
		provideTreeCatalog,
		provideContentSource,
		provideConfirmer,
		provideSubtitleHost,
		provideNotifier,
		provideRefreshConfig,
		usecase.NewTreeRefresh,
		provideExportConfig,
		usecase.NewTreeExport,
		usecase.NewSubtitleTransfer,
		provideSchedule,
		app.New,
	)
	return nil, nil, nil
}
