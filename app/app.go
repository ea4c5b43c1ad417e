package app

import (
	"fmt"

	"assetmaster"
	"assetmaster/app/handler"
	"assetmaster/app/middleware"

	"github.com/gofiber/fiber/v2"
)

type Storage interface {
	handler.UserStore
	handler.SettingStore
}

type Options struct {
	JwtKey     string
	CronSecret string
	Production bool
	Origins    string
}

// New wires the routes. The cron route has its own secret and is registered before the JWT middleware.
func New(opt Options, stg Storage, am *assetmaster.AssetMaster) *fiber.App {

	app := fiber.New(fiber.Config{
		AppName:               "assetmaster",
		DisableStartupMessage: true,
	})

	middleware.SetupMiddleware(app, opt.Origins)

	handler.NewCronHandler(am, opt.CronSecret, opt.Production).InitRoute(app)
	handler.NewAuthHandler(stg, opt.JwtKey).InitRoute(app)

	handler.NewAssetHandler(am, am).InitRoute(app)
	handler.NewCategoryHandler(am).InitRoute(app)
	handler.NewDashboardHandler(am, am).InitRoute(app)
	handler.NewSettingsHandler(stg).InitRoute(app)
	handler.NewEventHandler(am, am, am).InitRoute(app)

	return app
}

func Run(port int, opt Options, stg Storage, am *assetmaster.AssetMaster) error {
	return New(opt, stg, am).Listen(fmt.Sprintf(":%d", port))
}
