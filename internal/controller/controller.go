package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/vocabtest/internal/dto"
	"github.com/lshigami/vocabtest/internal/i18n"
	"github.com/lshigami/vocabtest/internal/service"
	"github.com/rs/zerolog/log"
)

// RespondError maps service errors onto HTTP statuses with a localized message.
func RespondError(ctx *gin.Context, err error) {
	status, msgID := http.StatusInternalServerError, "InternalError"
	switch {
	case errors.Is(err, service.ErrValidation):
		status, msgID = http.StatusBadRequest, "InvalidRequest"
	case errors.Is(err, service.ErrInsufficientPool):
		status, msgID = http.StatusBadRequest, "InsufficientPool"
	case errors.Is(err, service.ErrNotFound):
		status, msgID = http.StatusNotFound, "NotFound"
	case errors.Is(err, service.ErrConflict):
		status, msgID = http.StatusConflict, "SessionConflict"
	case errors.Is(err, service.ErrAlreadyExists):
		status, msgID = http.StatusConflict, "AlreadyExists"
	}

	resp := dto.ErrorResponse{Message: i18n.T(ctx.Request.Context(), msgID)}
	if status < http.StatusInternalServerError {
		resp.Details = []string{err.Error()}
	} else {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Request failed")
	}
	ctx.JSON(status, resp)
}

// RespondBindError reports a request body that failed binding or validation.
func RespondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Message: i18n.T(ctx.Request.Context(), "InvalidRequest"),
		Details: []string{err.Error()},
	})
}

// ParamID reads a positive numeric path parameter. It writes the 400 response itself.
func ParamID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		RespondBindError(ctx, errors.New("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

// OptionalQueryID reads an optional numeric query parameter; nil when absent.
func OptionalQueryID(ctx *gin.Context, name string) (*uint, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		RespondBindError(ctx, errors.New("invalid "+name+" query parameter"))
		return nil, false
	}
	v := uint(id)
	return &v, true
}

// RequiredQueryID is OptionalQueryID for parameters that must be present.
func RequiredQueryID(ctx *gin.Context, name string) (uint, bool) {
	id, ok := OptionalQueryID(ctx, name)
	if !ok {
		return 0, false
	}
	if id == nil {
		RespondBindError(ctx, errors.New(name+" query parameter is required"))
		return 0, false
	}
	return *id, true
}
