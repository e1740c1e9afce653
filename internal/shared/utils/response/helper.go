package response

import (
	"ticketly/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError logs err against the request and writes an error envelope.
func RespondError(c *gin.Context, code int, message string, err error) {
	if code >= 500 {
		logger.GetDefault().LogHTTPError(c, err, code)
	}
	RespondJSON(c, "error", code, message, nil, err.Error())
}
