package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogapp/internal/auth"
	"blogapp/internal/config"
	"blogapp/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *auth.SessionManager,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	// multipart framing needs some room on top of the largest accepted image
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dK", cfg.MaxUploadBytes/1024+1024)))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Binder = &StrictBinder{}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/images", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/logout", authHandler.Logout)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/users/:id", userHandler.GetUser)

	api.GET("/posts", postHandler.ListPosts)
	api.GET("/posts/", postHandler.ListPosts)
	api.GET("/posts/:id", postHandler.GetPost)
	api.GET("/posts/user/:userId", postHandler.ListUserPosts)

	api.GET("/comments/post/:postId", commentHandler.ListPostComments)

	// Secured routes (require a valid session cookie). Attached per route so
	// unknown /api paths still answer 404.
	secured := []echo.MiddlewareFunc{sessions.Middleware(), auth.RequireUser}

	api.GET("/auth/refetch", authHandler.Refetch, secured...)

	api.PUT("/users/:id", userHandler.UpdateUser, secured...)
	api.DELETE("/users/:id", userHandler.DeleteUser, secured...)

	api.POST("/posts/create", postHandler.CreatePost, secured...)
	api.PUT("/posts/:id", postHandler.UpdatePost, secured...)
	api.DELETE("/posts/:id", postHandler.DeletePost, secured...)

	api.POST("/comments/create", commentHandler.CreateComment, secured...)
	api.PUT("/comments/:id", commentHandler.UpdateComment, secured...)
	api.DELETE("/comments/:id", commentHandler.DeleteComment, secured...)

	api.POST("/upload", uploadHandler.Upload, secured...)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// StrictBinder decodes JSON bodies rejecting unknown fields; other content
// types fall back to echo's default body binding.
type StrictBinder struct {
	echo.DefaultBinder
}

// Bind implements echo.Binder interface.
func (b *StrictBinder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	if req.ContentLength == 0 {
		return nil
	}

	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return b.BindBody(c, i)
	}

	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(i); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return errors.New("decode body: trailing data after JSON value")
	}
	return nil
}
