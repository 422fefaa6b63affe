package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"ai-resumebuilder-be/internal/dto"
	"ai-resumebuilder-be/internal/pkg/serverutils"
	"ai-resumebuilder-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	Stream(ctx *fiber.Ctx) error
}

type chatController struct {
	assistantService service.IAssistantService
}

func NewChatController(assistantService service.IAssistantService) IChatController {
	return &chatController{
		assistantService: assistantService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("send", c.Send)
	h.Post("stream", c.Stream)
	h.Get("stream", c.Stream)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.SendChat(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

// Stream runs a turn over SSE: "delta" events carry the stabilized visible
// text, "artifact" the stored document, then a final "done" (or "error").
func (c *chatController) Stream(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.StreamChatRequest
	if ctx.Method() == fiber.MethodGet {
		// EventSource cannot send a body; accept query params.
		conversationId, err := uuid.Parse(ctx.Query("conversation_id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation_id")
		}
		req.ConversationId = conversationId
		req.Message = ctx.Query("message")
	} else {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	// The fiber ctx is released once the handler returns; the stream writer
	// must not touch it.
	assistant := c.assistantService
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		emit := func(event string, data interface{}) error {
			payload, err := json.Marshal(data)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
				return err
			}
			return w.Flush()
		}

		if err := assistant.StreamChat(context.Background(), userId, &req, emit); err != nil {
			emit("error", map[string]string{"message": err.Error()})
		}
	}))

	return nil
}
