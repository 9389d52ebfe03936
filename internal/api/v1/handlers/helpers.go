package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"weatherdash/internal/db/weatherrecord"
	"weatherdash/internal/providers"
	"weatherdash/internal/validation"
)

func respondWithError(c *fiber.Ctx, code int, errorCode, message string) error {
	return c.Status(code).JSON(ErrorResponse{
		Errors: []Error{
			{
				Code:   errorCode,
				Detail: message,
				Status: code,
				Title:  http.StatusText(code),
			},
		},
	})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// validation faults and malformed ids are the caller's (400), a missing
// record is 404, a missing provider key is a configuration fault (500) and a
// rejected or unreachable provider surfaces as 502.
func respondServiceError(c *fiber.Ctx, err error) error {
	var validationErr *validation.ValidationError
	var providerErr *providers.ProviderError

	switch {
	case errors.As(err, &validationErr):
		return respondWithError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", validationErr.Error())
	case errors.Is(err, weatherrecord.ErrInvalidID):
		return respondWithError(c, fiber.StatusBadRequest, "INVALID_ID", err.Error())
	case errors.Is(err, weatherrecord.ErrNotFound):
		return respondWithError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, providers.ErrMissingAPIKey):
		return respondWithError(c, fiber.StatusInternalServerError, "CONFIGURATION_ERROR", err.Error())
	case errors.As(err, &providerErr):
		return respondWithError(c, fiber.StatusBadGateway, "PROVIDER_ERROR", providerErr.Error())
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return respondWithError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
