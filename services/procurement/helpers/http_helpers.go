package helpers

import (
	"errors"
	"fmt"
	"net/http"

	model "procurehub/internal/models"
	"procurehub/internal/procureerrors"
	"procurehub/utils"

	"github.com/gin-gonic/gin"
)

// ActorContextKey is where the identity middleware stores the caller.
const ActorContextKey = "actor"

// ActorFromContext returns the caller set by the identity middleware. An
// unauthenticated request yields the zero Actor.
func ActorFromContext(c *gin.Context) model.Actor {
	v, ok := c.Get(ActorContextKey)
	if !ok {
		return model.Actor{}
	}
	actor, _ := v.(model.Actor)
	return actor
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, procureerrors.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, procureerrors.ErrForbidden):
		return http.StatusForbidden, "operation not permitted"
	case errors.Is(err, procureerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request details"
	case errors.Is(err, procureerrors.ErrTenderClosed):
		return http.StatusConflict, "tender is not accepting bids"
	case errors.Is(err, procureerrors.ErrDuplicateBid):
		return http.StatusConflict, "vendor already has a bid on this tender"
	case errors.Is(err, procureerrors.ErrTooEarly):
		return http.StatusConflict, "sealed tender cannot be awarded before its closing date"
	case errors.Is(err, procureerrors.ErrInvalidState):
		return http.StatusConflict, "operation not allowed in current state"
	case errors.Is(err, procureerrors.ErrConflict):
		return http.StatusConflict, "conflicting update"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
