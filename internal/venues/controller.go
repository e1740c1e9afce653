package venues

import (
	"errors"
	"net/http"

	"ticketly/internal/layout"
	"ticketly/internal/shared/utils/response"
	"ticketly/internal/titles"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

//  TEMPLATES

func (c *Controller) ListTemplates(ctx *gin.Context) {
	templates := c.service.ListTemplates(ctx.Request.Context())
	response.RespondJSON(ctx, "success", http.StatusOK, "Templates retrieved successfully", templates, nil)
}

// GetTemplateLayout godoc
// @Summary Preview the seating layout generated for a template
// @Tags venues
// @Produce json
// @Param name path string true "Template name"
// @Success 200 {object} response.StandardApiResponse
// @Router /venue-templates/{name}/layout [get]
func (c *Controller) GetTemplateLayout(ctx *gin.Context) {
	result, err := c.service.GetTemplateLayout(ctx.Request.Context(), ctx.Param("name"))
	if err != nil {
		response.RespondError(ctx, statusFor(err), "Failed to generate layout", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout generated successfully", result, nil)
}

func (c *Controller) ListCities(ctx *gin.Context) {
	cities := c.service.ListCities(ctx.Request.Context())
	response.RespondJSON(ctx, "success", http.StatusOK, "Cities retrieved successfully", cities, nil)
}

func (c *Controller) SelectTemplate(ctx *gin.Context) {
	var req SelectTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.service.SelectTemplate(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, statusFor(err), "Failed to select template", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Template selected successfully", result, nil)
}

//  CINEMAS

func (c *Controller) CreateCinema(ctx *gin.Context) {
	var req CreateCinemaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	cinema, err := c.service.CreateCinema(ctx.Request.Context(), req)
	if err != nil {
		statusCode := statusFor(err)
		if statusCode == http.StatusInternalServerError {
			statusCode = http.StatusBadRequest
		}
		response.RespondError(ctx, statusCode, "Failed to create cinema", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Cinema created successfully", cinema, nil)
}

func (c *Controller) ListCinemas(ctx *gin.Context) {
	cinemas, err := c.service.ListCinemas(ctx.Request.Context(), ctx.Query("city"))
	if err != nil {
		response.RespondError(ctx, http.StatusInternalServerError, "Failed to list cinemas", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cinemas retrieved successfully", cinemas, nil)
}

//  HALLS

// ProvisionHall godoc
// @Summary Provision a hall in a cinema from the venue registry
// @Tags venues
// @Accept json
// @Produce json
// @Param id path string true "Cinema ID"
// @Param body body ProvisionHallRequest true "Hall"
// @Success 201 {object} response.StandardApiResponse
// @Router /admin/cinemas/{id}/halls [post]
func (c *Controller) ProvisionHall(ctx *gin.Context) {
	cinemaID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid cinema ID", nil, err.Error())
		return
	}

	var req ProvisionHallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.service.ProvisionHall(ctx.Request.Context(), cinemaID, req)
	if err != nil {
		response.RespondError(ctx, statusFor(err), "Failed to provision hall", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Hall provisioned successfully", result, nil)
}

func (c *Controller) ListHalls(ctx *gin.Context) {
	var query HallListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	var cinemaID *uuid.UUID
	if query.CinemaID != "" {
		id := uuid.MustParse(query.CinemaID)
		cinemaID = &id
	}

	halls, err := c.service.ListHalls(ctx.Request.Context(), cinemaID)
	if err != nil {
		response.RespondError(ctx, http.StatusInternalServerError, "Failed to list halls", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Halls retrieved successfully", halls, nil)
}

func (c *Controller) GetHallLayout(ctx *gin.Context) {
	hallID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid hall ID", nil, err.Error())
		return
	}

	result, err := c.service.GetHallLayout(ctx.Request.Context(), hallID)
	if err != nil {
		response.RespondError(ctx, statusFor(err), "Failed to get hall layout", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hall layout retrieved successfully", result, nil)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrTemplateNotFound),
		errors.Is(err, ErrConfigurationNotFound),
		errors.Is(err, ErrCinemaNotFound),
		errors.Is(err, ErrHallNotFound),
		errors.Is(err, titles.ErrTitleNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoTemplateAvailable),
		errors.Is(err, ErrTemplateNotPermitted),
		errors.Is(err, layout.ErrInvalidLayoutConfig):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
