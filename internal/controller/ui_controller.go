package controller

import (
	"survey-dashboard-be/internal/web"

	"github.com/gofiber/fiber/v2"
)

type IUIController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type uiController struct{}

func NewUIController() IUIController {
	return &uiController{}
}

func (c *uiController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Index)
	r.Get("/healthz", c.Health)
}

func (c *uiController) Index(ctx *fiber.Ctx) error {
	ctx.Type("html", "utf-8")
	return ctx.Send(web.IndexHTML)
}

func (c *uiController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}
