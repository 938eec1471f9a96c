package handlers

import (
	"errors"
	"net/http"

	"github.com/dimitrije/sweetshop-api/internal/inventory"
	"github.com/dimitrije/sweetshop-api/internal/services"
	"github.com/dimitrije/sweetshop-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

// respondError maps a service error onto a response. Anything unrecognised is
// logged and reported as a 500 with fallback as the message.
func respondError(c *drift.Context, logger *zap.Logger, err error, fallback string) {
	var verr *inventory.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]dto.FieldError, len(verr.Fields))
		for i, f := range verr.Fields {
			fields[i] = dto.FieldError{Field: f.Field, Message: f.Message}
		}
		_ = c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: verr.Error(), Fields: fields})

	case errors.Is(err, inventory.ErrNoFieldsToUpdate),
		errors.Is(err, inventory.ErrDeleteNotConfirmed),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrPasswordTooLong):
		c.BadRequest(err.Error())

	case errors.Is(err, services.ErrSweetNotFound):
		c.NotFound("sweet not found")

	case errors.Is(err, services.ErrUserNotFound):
		c.NotFound("user not found")

	case errors.Is(err, services.ErrVersionConflict):
		_ = c.JSON(http.StatusConflict, dto.ConflictResponse{
			Code:    "VERSION_CONFLICT",
			Message: "sweet has been modified by another user",
		})

	case errors.Is(err, inventory.ErrOutOfStock):
		_ = c.JSON(http.StatusConflict, dto.ConflictResponse{
			Code:    "OUT_OF_STOCK",
			Message: "sweet is out of stock",
		})

	case errors.Is(err, services.ErrEmailTaken):
		_ = c.JSON(http.StatusConflict, dto.ConflictResponse{
			Code:    "EMAIL_TAKEN",
			Message: err.Error(),
		})

	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized(err.Error())

	default:
		logger.Error(fallback,
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.InternalServerError(fallback)
	}
}
