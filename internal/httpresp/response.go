package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type ListResponse[T any] struct {
	Data    []T    `json:"data"`
	Total   int    `json:"total"`
	Message string `json:"message,omitempty"`
}

func OK(c *gin.Context, data any, message ...string) {
	c.JSON(http.StatusOK, Envelope{Data: data, Message: first(message)})
}

func Created(c *gin.Context, data any, message ...string) {
	c.JSON(http.StatusCreated, Envelope{Data: data, Message: first(message)})
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
