//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"shotbox/cmd"
	"shotbox/database"
	"shotbox/internal/handlers"
	"shotbox/internal/repository"
	"shotbox/internal/services"
)

func InitializeServer() (*cmd.Server, error) {
	wire.Build(
		cmd.NewServer,
		services.NewLogService,
		services.NewIndexerService,
		services.NewOrganizerService,
		services.NewSearchService,
		services.NewCuratorService,
		handlers.NewItemHandler,
		handlers.NewSearchHandler,
		handlers.NewOrganizeHandler,
		repository.NewItemRepository,
		repository.NewSearchTermRepository,
		repository.NewAuditRepository,
		database.SetupDatabase,
		Provider,
		ProvideIndex,
	)
	return nil, nil
}
