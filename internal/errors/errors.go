package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthorized is returned when a request carries no valid session.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden is returned when the session user does not own the resource.
	ErrForbidden = errors.New("you can only modify your own resources")
	// ErrUserAlreadyExists is returned when username or email is taken.
	ErrUserAlreadyExists = errors.New("username or email already in use")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrInvalidFilename is returned when an upload names an unusable file.
	ErrInvalidFilename = errors.New("invalid file name")
	// ErrUnsupportedMedia is returned when an upload is not an image.
	ErrUnsupportedMedia = errors.New("only image uploads are accepted")
	// ErrFileTooLarge is returned when an upload exceeds the configured size.
	ErrFileTooLarge = errors.New("file too large")
	// ErrFileExists is returned when an upload would overwrite a stored blob.
	ErrFileExists = errors.New("a file with this name already exists")
	// ErrNoFile is returned when an upload request carries no file part.
	ErrNoFile = errors.New("no file uploaded")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are
// matched too; anything unrecognised becomes a detail-free 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, ErrUserAlreadyExists.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, ErrPostNotFound.Error(), "POST_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, ErrCommentNotFound.Error(), "COMMENT_NOT_FOUND")
	case errors.Is(err, ErrInvalidFilename):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidFilename.Error(), "INVALID_FILENAME")
	case errors.Is(err, ErrUnsupportedMedia):
		return NewHTTPError(http.StatusBadRequest, ErrUnsupportedMedia.Error(), "UNSUPPORTED_MEDIA")
	case errors.Is(err, ErrNoFile):
		return NewHTTPError(http.StatusBadRequest, ErrNoFile.Error(), "NO_FILE")
	case errors.Is(err, ErrFileExists):
		return NewHTTPError(http.StatusConflict, ErrFileExists.Error(), "FILE_EXISTS")
	case errors.Is(err, ErrFileTooLarge):
		return NewHTTPError(http.StatusRequestEntityTooLarge, ErrFileTooLarge.Error(), "FILE_TOO_LARGE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// IsInternal reports whether err has no domain mapping and would surface as a 500.
func IsInternal(err error) bool {
	return MapErrorToHTTP(err).StatusCode == http.StatusInternalServerError
}
