package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"weatherdash/internal/db/weatherrecord"
	"weatherdash/internal/service"
)

type WeatherHandler struct {
	weatherService service.WeatherService
	timeout        time.Duration
}

func NewWeatherHandler(weatherService service.WeatherService, timeout time.Duration) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
		timeout:        timeout,
	}
}

// Register mounts the weather routes behind the auth guard.
func (h *WeatherHandler) Register(app *fiber.App, guard fiber.Handler) {
	weather := app.Group("/weather", guard)

	weather.Get("/", h.ListRecords)
	weather.Post("/", h.CreateRecord)
	weather.Post("/fetch", h.FetchRecord)
	weather.Get("/:id", h.GetRecord)
	weather.Put("/:id", h.ReplaceRecord)
	weather.Post("/:id/refresh", h.RefreshRecord)
	weather.Delete("/:id", h.DeleteRecord)
}

func (h *WeatherHandler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.timeout)
}

func (h *WeatherHandler) ListRecords(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	records, err := h.weatherService.ListRecords(ctx, c.Query("city"), c.QueryInt("limit"))
	if err != nil {
		return respondServiceError(c, err)
	}
	if records == nil {
		records = []weatherrecord.WeatherRecord{}
	}
	return c.JSON(records)
}

func (h *WeatherHandler) GetRecord(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	record, err := h.weatherService.GetRecord(ctx, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(record)
}

// CreateRecord handles both modes: manual=true persists the body as a full
// candidate record, otherwise the body's city (or the configured default)
// feeds a provider fetch.
func (h *WeatherHandler) CreateRecord(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var mode struct {
		Manual bool   `json:"manual"`
		City   string `json:"city"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&mode); err != nil {
			return respondWithError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "malformed request body")
		}
	}

	var created *weatherrecord.WeatherRecord
	var err error

	if mode.Manual {
		var record weatherrecord.WeatherRecord
		if err := c.BodyParser(&record); err != nil {
			return respondWithError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "malformed request body")
		}
		created, err = h.weatherService.CreateManual(ctx, &record)
	} else {
		created, err = h.weatherService.FetchAndCreate(ctx, mode.City)
	}
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// FetchRecord always goes through the provider, never manual mode.
func (h *WeatherHandler) FetchRecord(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	created, err := h.weatherService.FetchAndCreate(ctx, c.Query("city"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *WeatherHandler) ReplaceRecord(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var record weatherrecord.WeatherRecord
	if err := c.BodyParser(&record); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "malformed request body")
	}

	replaced, err := h.weatherService.ReplaceRecord(ctx, c.Params("id"), &record)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(replaced)
}

// RefreshRecord updates the record's weather fields in place; the id never
// changes on refresh.
func (h *WeatherHandler) RefreshRecord(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	refreshed, err := h.weatherService.RefreshRecord(ctx, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(refreshed)
}

func (h *WeatherHandler) DeleteRecord(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id := c.Params("id")
	if err := h.weatherService.DeleteRecord(ctx, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(DeleteResponse{Deleted: true, ID: id})
}
