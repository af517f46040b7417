//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobflow/internal/config"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Sources and archive
		provideAdapters,
		provideArchive,
		provideOrchestrator,

		// Stores
		providePreferenceStore,
		provideSavedSearchStore,

		// Services
		providePreferenceService,
		provideSearchService,
		provideAlertService,

		// Google Sheets and notification channels
		provideSheetsClient,
		provideSheetsExporter,
		provideNotifiers,

		newResources,
	)

	return nil, nil, nil
}
