package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/marketplace"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/utils"
)

// respondError maps the service error taxonomy onto HTTP statuses in one
// place. Business-rule failures and gateway failures map to distinct ranges
// so callers can tell which are retryable.
func respondError(c *gin.Context, err error) {
	var (
		validationErr marketplace.ValidationError
		conflictErr   marketplace.ConflictError
		policyErr     marketplace.PolicyViolationError
		lockedErr     marketplace.RequestLockedError
		unauthorized  marketplace.UnauthorizedError
		notFoundErr   marketplace.NotFoundError
		gatewayErr    marketplace.GatewayUnavailableError
		refundFailed  marketplace.RefundFailedError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", validationErr.Msg)
	case errors.As(err, &conflictErr):
		utils.JSONError(c, http.StatusConflict, "Conflict", conflictErr.Msg)
	case errors.As(err, &lockedErr):
		utils.JSONError(c, http.StatusConflict, "Request locked", lockedErr.Error())
	case errors.As(err, &policyErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Policy violation", policyErr.Msg)
	case errors.As(err, &unauthorized):
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", unauthorized.Msg)
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, "Not found", notFoundErr.Error())
	case errors.As(err, &gatewayErr):
		utils.JSONError(c, http.StatusBadGateway, "Payment gateway unavailable", gatewayErr.Error())
	case errors.As(err, &refundFailed):
		utils.JSONError(c, http.StatusBadGateway, "Refund failed", refundFailed.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
