package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/apperr"
)

// Body 统一响应体
type Body struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Body{Status: "success", Message: msg, Data: data})
}

func Created(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusCreated, Body{Status: "success", Message: msg, Data: data})
}

// Fail 按错误分类写出真实 HTTP 状态码和单一 JSON 错误体
func Fail(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		c.AbortWithStatusJSON(ae.HTTPStatus(), gin.H{
			"status":        "Error",
			"error_message": ae.Error(),
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"status":        "Error",
		"error_message": "Internal Server Error",
	})
}
