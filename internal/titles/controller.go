package titles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketly/internal/shared/utils/response"
)

type Controller interface {
	CreateTitle(c *gin.Context)
	GetTitle(c *gin.Context)
	ListTitles(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// CreateTitle godoc
// @Summary Create a movie or event title
// @Tags titles
// @Accept json
// @Produce json
// @Param body body CreateTitleRequest true "Title"
// @Success 201 {object} response.StandardApiResponse
// @Router /admin/titles [post]
func (ctrl *controller) CreateTitle(c *gin.Context) {
	var req CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	title, err := ctrl.service.CreateTitle(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "Failed to create title", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Title created successfully", title, nil)
}

func (ctrl *controller) GetTitle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid title ID", nil, err.Error())
		return
	}

	title, err := ctrl.service.GetTitle(c.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrTitleNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondError(c, statusCode, "Failed to get title", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Title retrieved successfully", title, nil)
}

func (ctrl *controller) ListTitles(c *gin.Context) {
	var query TitleListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := ctrl.service.ListTitles(c.Request.Context(), query)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "Failed to list titles", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Titles retrieved successfully", list, nil)
}
