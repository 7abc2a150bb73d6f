package catalog

import (
	"VirtualMirror/pkg/response"
	"net/http"
)

var (
	ErrGarmentNotFound  = response.NewError(http.StatusNotFound, "garment not found")
	ErrInvalidCategory  = response.NewError(http.StatusBadRequest, "invalid garment category")
	ErrCategoryUnclear  = response.NewError(http.StatusUnprocessableEntity, "garment category could not be determined")
	ErrMissingImage     = response.NewError(http.StatusBadRequest, "garment image is required")
	ErrFailedToUpload   = response.NewError(http.StatusInternalServerError, "failed to upload garment image")
)
