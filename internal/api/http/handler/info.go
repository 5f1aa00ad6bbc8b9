package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Info handles the liveness endpoint.
type Info struct{}

// NewInfo creates a new Info handler.
func NewInfo() *Info {
	return &Info{}
}

// Hello returns a trivial liveness payload.
func (h *Info) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello, World!"})
}
