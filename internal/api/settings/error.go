package settings

import (
	"VirtualMirror/pkg/response"
	"net/http"
)

var (
	ErrInvalidPermissionsPayload = response.NewError(http.StatusBadRequest, "malformed permissions payload")
	ErrSettingNotFound           = response.NewError(http.StatusNotFound, "setting not found")
	ErrInvalidAPIConfig          = response.NewError(http.StatusBadRequest, "malformed api configuration")
	ErrInvalidGDPRConfig         = response.NewError(http.StatusBadRequest, "malformed gdpr configuration")
)
