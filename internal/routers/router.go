package routers

import (
	"github.com/gofiber/fiber/v2"

	"shotbox/cmd"
)

func SetupRoutes(app *fiber.App, server *cmd.Server) {
	SetupItemRouter(app, server.ItemHandler)
	SetupSearchRouter(app, server.SearchHandler)
	SetupOrganizeRouter(app, server.OrganizeHandler)
	SetupCuratorRouter(app, server.Curator)
}
