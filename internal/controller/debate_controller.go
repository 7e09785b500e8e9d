package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/krishngohel/AIDebateTool/internal/dto"
	"github.com/krishngohel/AIDebateTool/internal/pkg/serverutils"
	"github.com/krishngohel/AIDebateTool/internal/service"
)

type IDebateController interface {
	RegisterRoutes(r fiber.Router)
	Turn(ctx *fiber.Ctx) error
	End(ctx *fiber.Ctx) error
	Topics(ctx *fiber.Ctx) error
}

type debateController struct {
	debateService service.IDebateService
}

func NewDebateController(debateService service.IDebateService) IDebateController {
	return &debateController{
		debateService: debateService,
	}
}

func (c *debateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/debate/v1")
	h.Post("turn", c.Turn)
	h.Post("end", c.End)
	h.Get("topics", c.Topics)
}

func (c *debateController) Turn(ctx *fiber.Ctx) error {
	var req dto.TurnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.debateService.Turn(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrModelUnavailable) {
			return ctx.Status(fiber.StatusBadGateway).
				JSON(serverutils.ErrorResponse(fiber.StatusBadGateway, "Failed to get a response, please try again."))
		}
		return err
	}

	// Violations are normal outcomes and still a 200.
	return ctx.JSON(serverutils.SuccessResponse("Turn processed", res))
}

func (c *debateController) End(ctx *fiber.Ctx) error {
	var req dto.EndDebateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.debateService.End(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Debate ended", res))
}

func (c *debateController) Topics(ctx *fiber.Ctx) error {
	res, err := c.debateService.Topics(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Topics listed", res))
}
