package voice

import (
	"VirtualMirror/pkg/response"
	"net/http"
)

var (
	ErrInvalidAudioFile     = response.NewError(http.StatusBadRequest, "invalid audio file")
	ErrEmptyTranscription   = response.NewError(http.StatusUnprocessableEntity, "no speech recognized")
	ErrCommandNotRecognized = response.NewError(http.StatusNotFound, "command not recognized")
	ErrCommandNotFound      = response.NewError(http.StatusNotFound, "command not found")
	ErrTranscriptionFailed  = response.NewError(http.StatusInternalServerError, "failed to transcribe audio")
)
