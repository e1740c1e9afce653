package sessions

import (
	"errors"
	"io"
	"net/http"

	"ticketly/internal/shared/utils/response"
	"ticketly/internal/titles"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
	job     *CoverageJob
}

func NewController(service Service, job *CoverageJob) *Controller {
	return &Controller{service: service, job: job}
}

type ensureRequest struct {
	CinemaID string `json:"cinema_id" binding:"omitempty,uuid"`
}

// ListSessions godoc
// @Summary List showtimes of a title
// @Tags sessions
// @Produce json
// @Param id path string true "Title ID"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} response.StandardApiResponse
// @Router /titles/{id}/sessions [get]
func (c *Controller) ListSessions(ctx *gin.Context) {
	movieID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid title ID", nil, err.Error())
		return
	}

	var query SessionListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := c.service.ListSessions(ctx.Request.Context(), movieID, query)
	if err != nil {
		response.RespondError(ctx, http.StatusInternalServerError, "Failed to list sessions", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Sessions retrieved successfully", list, nil)
}

// EnsureSessions godoc
// @Summary Fill uncovered days in the showtime window of a title
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Title ID"
// @Success 200 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Router /admin/titles/{id}/sessions/ensure [post]
func (c *Controller) EnsureSessions(ctx *gin.Context) {
	movieID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid title ID", nil, err.Error())
		return
	}

	// the body is optional; chunked requests carry no Content-Length
	var req ensureRequest
	if ctx.Request.Body != nil && ctx.Request.Body != http.NoBody {
		if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
			return
		}
	}

	var cinemaID *uuid.UUID
	if req.CinemaID != "" {
		id := uuid.MustParse(req.CinemaID)
		cinemaID = &id
	}

	result, err := c.service.EnsureSessions(ctx.Request.Context(), movieID, cinemaID)
	if err != nil {
		response.RespondError(ctx, statusFor(err), "Failed to ensure sessions", err)
		return
	}

	status := http.StatusOK
	if result.Created > 0 {
		status = http.StatusCreated
	}
	response.RespondJSON(ctx, "success", status, "Sessions ensured successfully", result, nil)
}

func (c *Controller) JobStatus(ctx *gin.Context) {
	if c.job == nil {
		response.RespondJSON(ctx, "success", http.StatusOK, "Coverage job disabled", gin.H{"status": "disabled"}, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Coverage job status", c.job.Status(), nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, titles.ErrTitleNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoHallsAvailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrLockHeld):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
