package routers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"shotbox/internal/handlers"
	"shotbox/internal/services"
)

func SetupOrganizeRouter(app *fiber.App, organizeHandler *handlers.OrganizeHandler) {
	app.Post("/organize/rollback", organizeHandler.Rollback)
	app.Post("/organize/:id", organizeHandler.PlaceItem)
}

func SetupCuratorRouter(app *fiber.App, curator *services.Curator) {
	app.Post("/curator/run", func(c *fiber.Ctx) error {
		if err := curator.ForceVerify(); err != nil {
			return c.Status(http.StatusConflict).JSON(map[string]interface{}{"error": err.Error()})
		}
		return c.SendStatus(http.StatusAccepted)
	})
	app.Get("/curator/status", func(c *fiber.Ctx) error {
		return c.JSON(map[string]interface{}{"verifying": curator.IsVerifying()})
	})
}
