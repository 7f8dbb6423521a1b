package handler

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"blogapp/internal/auth"
	"blogapp/internal/errors"
)

// MessageResponse is returned by endpoints that have nothing else to say.
type MessageResponse struct {
	Message string `json:"message"`
}

// errorResponse converts a service error into an echo error carrying the
// standard {"error","code"} body. Unmapped errors are logged and hidden.
func errorResponse(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

// invalidRequest hides decoder detail from the client. err is logged rather
// than attached: echo renders an internal *echo.HTTPError in place of this body.
func invalidRequest(err error) error {
	log.Printf("bind request: %v", err)
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	})
}

func validationFailed(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return invalidRequest(err)
	}
	if err := c.Validate(req); err != nil {
		return validationFailed(err)
	}
	return nil
}

// pathID parses a UUID path parameter. Malformed ids cannot name any record,
// so they are reported with the given not-found error.
func pathID(c echo.Context, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errorResponse(notFound)
	}
	return id, nil
}

// sessionUser returns the verified caller. Routes using it sit behind
// auth.RequireUser, so a miss here is treated as unauthenticated.
func sessionUser(c echo.Context) (uuid.UUID, error) {
	id, ok := auth.CurrentUser(c)
	if !ok {
		return uuid.Nil, errorResponse(errors.ErrUnauthorized)
	}
	return id, nil
}
