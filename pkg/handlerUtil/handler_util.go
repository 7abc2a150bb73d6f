package handlerUtil

import (
	"VirtualMirror/internal/api/capture"
	"VirtualMirror/internal/api/catalog"
	"VirtualMirror/internal/api/session"
	"VirtualMirror/internal/api/settings"
	"VirtualMirror/internal/api/tryon"
	"VirtualMirror/internal/api/voice"
	"VirtualMirror/pkg/log"
	"VirtualMirror/pkg/response"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	// Session domain errors
	if errors.Is(err, session.ErrInvalidCredentials) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid credentials")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
			"code":    "INVALID_CREDENTIALS",
		})
	}

	if errors.Is(err, session.ErrConsentRequired) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Consent not yet granted")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Data processing consent is required before this action",
			"code":    "CONSENT_REQUIRED",
		})
	}

	if errors.Is(err, session.ErrTermsNotAccepted) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Terms not accepted")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Terms and conditions must be accepted first",
			"code":    "TERMS_NOT_ACCEPTED",
		})
	}

	if errors.Is(err, session.ErrSignatureRequired) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Signature missing from consent submission")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A signature image is required to grant consent",
			"code":    "SIGNATURE_REQUIRED",
		})
	}

	// Voice domain errors
	if errors.Is(err, voice.ErrInvalidAudioFile) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid audio file")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid audio file type",
		})
	}

	if errors.Is(err, voice.ErrEmptyTranscription) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Transcription came back empty")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "No speech could be recognized in the recording",
			"code":    "EMPTY_TRANSCRIPTION",
		})
	}

	if errors.Is(err, voice.ErrCommandNotRecognized) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("No command matched the utterance")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No registered command matches the utterance",
			"code":    "COMMAND_NOT_RECOGNIZED",
		})
	}

	if errors.Is(err, voice.ErrCommandNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Command not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Command not found",
			"code":    "COMMAND_NOT_FOUND",
		})
	}

	// Try-on domain errors
	if errors.Is(err, tryon.ErrInvalidAPIKey) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Rejected API key before dispatch")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "The configured generation API key is missing or too short",
			"code":    "INVALID_API_KEY",
		})
	}

	if errors.Is(err, tryon.ErrTryOnNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Try-on not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Try-on result not found",
			"code":    "TRYON_NOT_FOUND",
		})
	}

	if errors.Is(err, tryon.ErrUnknownVideoBackend) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Unknown video backend requested")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unknown video generation backend",
			"code":    "UNKNOWN_VIDEO_BACKEND",
		})
	}

	if errors.Is(err, tryon.ErrGenerationFailed) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Generation backend returned an error")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "The generation service rejected the request",
			"code":    "GENERATION_FAILED",
		})
	}

	if errors.Is(err, tryon.ErrSharingDisabled) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Share requested while messaging is disabled")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Message sharing is not enabled on this server",
			"code":    "SHARING_DISABLED",
		})
	}

	// Catalog domain errors
	if errors.Is(err, catalog.ErrGarmentNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Garment not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Garment not found",
			"code":    "GARMENT_NOT_FOUND",
		})
	}

	if errors.Is(err, catalog.ErrInvalidCategory) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid garment category")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid garment category",
			"code":    "INVALID_CATEGORY",
		})
	}

	// Capture domain errors
	if errors.Is(err, capture.ErrNoFrameProvided) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("No frame provided")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A camera frame is required",
			"code":    "NO_FRAME_PROVIDED",
		})
	}

	if errors.Is(err, capture.ErrPoseServiceUnavailable) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Pose detection service unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Pose detection service is unavailable",
			"code":    "POSE_SERVICE_UNAVAILABLE",
		})
	}

	// Settings domain errors
	if errors.Is(err, settings.ErrInvalidPermissionsPayload) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Malformed permissions payload, previous values kept")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Malformed permissions payload, previous values were kept",
			"code":    "INVALID_PERMISSIONS",
		})
	}

	if errors.Is(err, settings.ErrSettingNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Setting not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Setting not found",
			"code":    "SETTING_NOT_FOUND",
		})
	}

	// Expected errors without a dedicated branch still answer with their own
	// status code instead of a blanket 500.
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
