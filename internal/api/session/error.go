package session

import (
	"VirtualMirror/pkg/response"
	"net/http"
)

var (
	ErrInvalidCredentials = response.NewError(http.StatusUnauthorized, "invalid access code")
	ErrTermsNotAccepted   = response.NewError(http.StatusForbidden, "terms not accepted")
	ErrConsentRequired    = response.NewError(http.StatusForbidden, "consent required")
	ErrSignatureRequired  = response.NewError(http.StatusBadRequest, "signature image required")
	ErrConsentNotFound    = response.NewError(http.StatusNotFound, "consent record not found")
)
