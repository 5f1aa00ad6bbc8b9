package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/abriand/user-registry-server/internal/apierrors"
)

// handleError converts a service error into a JSON error response.
// Everything that is not an APIError becomes a generic 500 so storage
// internals are never exposed.
func handleError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apierrors.NewErrInternalServerError(err)
	}

	c.JSON(apiErr.HTTPCode, gin.H{"message": apiErr.Error()})
}
