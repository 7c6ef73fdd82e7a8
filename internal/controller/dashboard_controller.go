package controller

import (
	"bytes"
	"errors"
	"io"

	"survey-dashboard-be/internal/dto"
	"survey-dashboard-be/internal/pkg/serverutils"
	"survey-dashboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router)
	HandleEvent(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Purge(ctx *fiber.Ctx) error
	View(ctx *fiber.Ctx) error
	TablePage(ctx *fiber.Ctx) error
	ReplaceTable(ctx *fiber.Ctx) error
	EditCell(ctx *fiber.Ctx) error
	ChartHTML(ctx *fiber.Ctx) error
	ChartPNG(ctx *fiber.Ctx) error
}

type dashboardController struct {
	service service.IDashboardService
}

func NewDashboardController(service service.IDashboardService) IDashboardController {
	return &dashboardController{service: service}
}

// RegisterRoutes expects h to be the /dashboard/v1 group with the session
// middleware already applied.
func (c *dashboardController) RegisterRoutes(h fiber.Router) {
	h.Post("/events", c.HandleEvent)
	h.Post("/upload", c.Upload)
	h.Post("/purge", c.Purge)
	h.Get("/view", c.View)
	h.Get("/table", c.TablePage)
	h.Put("/table", c.ReplaceTable)
	h.Patch("/table/cells", c.EditCell)
	h.Get("/charts/:tab/html", c.ChartHTML)
	h.Get("/charts/:tab/png", c.ChartPNG)
}

func (c *dashboardController) HandleEvent(ctx *fiber.Ctx) error {
	var req dto.DashboardEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.HandleEvent(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success handle dashboard event", res))
}

// Upload accepts a multipart "file" field or a JSON data URL body.
func (c *dashboardController) Upload(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	if fh, err := ctx.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := c.service.UploadFile(ctx.UserContext(), sessionID, fh.Filename, data, ctx.FormValue("table_name"), ctx.FormValue("tab"))
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success upload dataset", res))
	}

	var req dto.UploadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Upload(ctx.UserContext(), sessionID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload dataset", res))
}

func (c *dashboardController) Purge(ctx *fiber.Ctx) error {
	res, err := c.service.Purge(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success purge dataset", res))
}

func (c *dashboardController) View(ctx *fiber.Ctx) error {
	res, err := c.service.View(ctx.UserContext(), serverutils.SessionID(ctx), ctx.Query("tab"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard view", res))
}

func (c *dashboardController) TablePage(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)

	res, err := c.service.TablePage(ctx.UserContext(), serverutils.SessionID(ctx), page)
	if err != nil {
		if errors.Is(err, service.ErrPageOutOfRange) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get table page", res))
}

func (c *dashboardController) ReplaceTable(ctx *fiber.Ctx) error {
	var req dto.ReplaceTableRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ReplaceTable(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success replace table", res))
}

func (c *dashboardController) EditCell(ctx *fiber.Ctx) error {
	var req dto.EditCellRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.EditCell(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success edit cell", res))
}

func (c *dashboardController) ChartHTML(ctx *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := c.service.ChartHTML(ctx.UserContext(), serverutils.SessionID(ctx), ctx.Params("tab"), &buf); err != nil {
		return err
	}

	ctx.Type("html", "utf-8")
	return ctx.Send(buf.Bytes())
}

func (c *dashboardController) ChartPNG(ctx *fiber.Ctx) error {
	img, err := c.service.ChartPNG(ctx.UserContext(), serverutils.SessionID(ctx), ctx.Params("tab"))
	if err != nil {
		var unavailable *service.ChartUnavailableError
		if errors.As(err, &unavailable) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, unavailable.Message))
		}
		return err
	}

	ctx.Type("png")
	return ctx.Send(img)
}
