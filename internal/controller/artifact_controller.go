package controller

import (
	"ai-resumebuilder-be/internal/pkg/serverutils"
	"ai-resumebuilder-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IArtifactController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ResumeHistory(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type artifactController struct {
	artifactService service.IArtifactService
}

func NewArtifactController(artifactService service.IArtifactService) IArtifactController {
	return &artifactController{
		artifactService: artifactService,
	}
}

func (c *artifactController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/artifact/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Get("history", c.ResumeHistory)
	h.Get(":id", c.Show)
	h.Get(":id/download", c.Download)
}

func (c *artifactController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	conversationId, err := uuid.Parse(ctx.Query("conversation_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation_id")
	}

	res, err := c.artifactService.GetAll(ctx.Context(), userId, conversationId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get artifacts", res))
}

func (c *artifactController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid artifact id")
	}

	res, err := c.artifactService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show artifact", res))
}

func (c *artifactController) ResumeHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	conversationId, err := uuid.Parse(ctx.Query("conversation_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation_id")
	}

	res, err := c.artifactService.ResumeHistory(ctx.Context(), userId, conversationId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get resume history", res))
}

// Download streams the rendered PDF bytes for an artifact.
func (c *artifactController) Download(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid artifact id")
	}

	rendered, filename, err := c.artifactService.Download(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	ctx.Set("Content-Type", rendered.ContentType)
	ctx.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return ctx.Send(rendered.Data)
}
