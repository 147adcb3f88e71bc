package routers

import (
	"github.com/gofiber/fiber/v2"

	"shotbox/internal/handlers"
)

func SetupItemRouter(app *fiber.App, itemHandler *handlers.ItemHandler) {
	app.Get("/items/recent", itemHandler.ListRecent)
	app.Post("/items", itemHandler.CreateItem)
	app.Get("/items/:id", itemHandler.GetItemByID)
	app.Put("/items/:id", itemHandler.UpdateItem)
	app.Delete("/items/:id", itemHandler.DeleteItem)
	app.Post("/index/rebuild", itemHandler.RebuildIndex)
}
