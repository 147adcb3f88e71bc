package routers

import (
	"github.com/gofiber/fiber/v2"

	"shotbox/internal/handlers"
)

func SetupSearchRouter(app *fiber.App, searchHandler *handlers.SearchHandler) {
	app.Get("/search", searchHandler.Search)
	app.Get("/search/fulltext", searchHandler.FullTextSearch)
	app.Get("/search/advanced", searchHandler.AdvancedSearch)
	app.Get("/search/suggestions", searchHandler.Suggestions)
	app.Get("/stats", searchHandler.Stats)
}
