package cmd

import (
	"shotbox/internal/config"
	"shotbox/internal/handlers"
	"shotbox/internal/services"
)

type Server struct {
	Config          *config.Configuration
	IndexerService  services.IndexerService
	OrganizerService services.OrganizerService
	SearchService   services.SearchService
	ItemHandler     *handlers.ItemHandler
	SearchHandler   *handlers.SearchHandler
	OrganizeHandler *handlers.OrganizeHandler
	Curator         *services.Curator
	LogService      services.LogService
}

func NewServer(
	cfg *config.Configuration,
	indexerService services.IndexerService,
	organizerService services.OrganizerService,
	searchService services.SearchService,
	itemHandler *handlers.ItemHandler,
	searchHandler *handlers.SearchHandler,
	organizeHandler *handlers.OrganizeHandler,
	curator *services.Curator,
	logService services.LogService,
) *Server {
	return &Server{
		Config:          cfg,
		IndexerService:  indexerService,
		OrganizerService: organizerService,
		SearchService:   searchService,
		ItemHandler:     itemHandler,
		SearchHandler:   searchHandler,
		OrganizeHandler: organizeHandler,
		Curator:         curator,
		LogService:      logService,
	}
}
