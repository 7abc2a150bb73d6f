package capture

import (
	"VirtualMirror/pkg/response"
	"net/http"
)

var (
	ErrNoFrameProvided        = response.NewError(http.StatusBadRequest, "camera frame required")
	ErrPoseServiceUnavailable = response.NewError(http.StatusServiceUnavailable, "pose detection service unavailable")
	ErrProfileNotFound        = response.NewError(http.StatusNotFound, "profile not found")
)
