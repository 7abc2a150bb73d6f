package captureHandler

import (
	"VirtualMirror/internal/api/capture"
	contextPkg "VirtualMirror/pkg/context"
	"VirtualMirror/pkg/handlerUtil"
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

// handlePoseWebSocket streams camera frames in and position verdicts out.
// Binary frames only; everything else is ignored.
func (h *CaptureHandler) handlePoseWebSocket(c *websocket.Conn) {
	h.log.Info("Pose capture WebSocket client connected")
	defer h.log.Info("Pose capture WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Pose WebSocket error: %v", err)
			}
			break
		}

		if messageType != websocket.BinaryMessage {
			continue
		}

		result, err := h.captureService.ProcessFrame(message)
		if err != nil {
			if writeErr := c.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
				break
			}
			continue
		}

		if err := c.WriteJSON(result); err != nil {
			break
		}
	}
}

func (h *CaptureHandler) CheckPosition(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 15*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	file, err := ctx.FormFile("frame")
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("camera frame is required"), ctx.Path())
	}

	src, err := file.Open()
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_frame")
	}
	defer src.Close()

	frame, err := io.ReadAll(src)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_frame")
	}

	result, err := h.captureService.CheckPosition(c, frame)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "check_position")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *CaptureHandler) SaveProfile(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req capture.ProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	profile, err := h.captureService.SaveProfile(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "save_profile")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, capture.ProfileResponse{
			Profile: profile,
		})
	}
}

func (h *CaptureHandler) GetProfile(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	profile, err := h.captureService.GetProfile(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_profile")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, capture.ProfileResponse{
			Profile: profile,
		})
	}
}
