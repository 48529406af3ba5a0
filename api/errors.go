package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/skyflow/internal/auth"
	"github.com/Domenick1991/skyflow/internal/domain"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const authorizationHeader = "Authorization"

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func statusOf(err error) int {
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return http.StatusUnauthorized
	}
	switch domain.KindOf(err) {
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindInvalidBusinessArgument, domain.KindInvalidData:
		return http.StatusBadRequest
	case domain.KindDuplicatedData:
		return http.StatusConflict
	case domain.KindEntityNotFound:
		return http.StatusNotFound
	case domain.KindIO:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err and attaches it to the context for the request logger.
// Internal failures are reported without their cause.
func writeError(c *gin.Context, err error) {
	status := statusOf(err)
	message := domain.MessageOf(err)
	switch {
	case status == http.StatusInternalServerError:
		message = http.StatusText(status)
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		message = "Bad credentials"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{StatusCode: status, Message: message})
}

func badRequest(c *gin.Context, message string) {
	writeError(c, domain.InvalidData(message))
}

// callerFrom captures the Authorization header exactly as sent.
// A header that is present but empty still counts as present.
func callerFrom(c *gin.Context) auth.CallerContext {
	values, ok := c.Request.Header[authorizationHeader]
	if !ok || len(values) == 0 {
		return auth.Anonymous()
	}
	return auth.WithAuthorization(values[0])
}
