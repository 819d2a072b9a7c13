package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/sprintdesk/internal/contract"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/alexanderramin/sprintdesk/internal/service"
	"github.com/gin-gonic/gin"
)

// writeError maps a use case error to its status and body. Unexpected
// errors are logged and reported without detail.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, contract.Error{Code: code, Message: msg})
}

func classify(err error) (int, contract.ErrorCode) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, contract.ErrValidation
	case errors.Is(err, service.ErrNoDestination):
		return http.StatusBadRequest, contract.ErrNoDestination
	case errors.Is(err, service.ErrOriginalTodo):
		return http.StatusBadRequest, contract.ErrOriginalTodo
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, contract.ErrForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, contract.ErrNotFound
	default:
		return http.StatusInternalServerError, contract.ErrInternal
	}
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, contract.Error{Code: contract.ErrInvalidRequest, Message: err.Error()})
}

func (h *handler) fail(c *gin.Context, err error) {
	writeError(c, h.Logger, err)
}
