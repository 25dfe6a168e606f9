package handler

import (
	"taxengine/internal/apperr"
	"taxengine/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the response envelope using the
// error taxonomy's status mapping.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	c.JSON(status, response.Error(status, err.Error()))
}
