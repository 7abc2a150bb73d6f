package tryon

import (
	"VirtualMirror/pkg/response"
	"net/http"
)

var (
	ErrInvalidAPIKey       = response.NewError(http.StatusBadRequest, "generation api key missing or too short")
	ErrTryOnNotFound       = response.NewError(http.StatusNotFound, "try-on not found")
	ErrGenerationNotFound  = response.NewError(http.StatusNotFound, "generation not found")
	ErrUnknownVideoBackend = response.NewError(http.StatusBadRequest, "unknown video backend")
	ErrGenerationFailed    = response.NewError(http.StatusBadGateway, "generation service rejected the request")
	ErrMissingPersonImage  = response.NewError(http.StatusBadRequest, "person image required")
	ErrMissingGarment      = response.NewError(http.StatusBadRequest, "garment reference required")
	ErrVideoNotReady       = response.NewError(http.StatusConflict, "video not ready to share")
	ErrSharingDisabled     = response.NewError(http.StatusServiceUnavailable, "message sharing is not enabled")
)
