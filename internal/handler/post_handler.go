package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapp/internal/errors"
	"blogapp/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRequest is the body of create and update. UserID and Username are
// accepted for client compatibility; the owner always comes from the session.
type PostRequest struct {
	Title      string   `json:"title" validate:"required,max=200"`
	Desc       string   `json:"desc" validate:"required"`
	Photo      string   `json:"photo,omitempty" validate:"omitempty,max=200"`
	Categories []string `json:"categories,omitempty" validate:"max=5,dive,max=32"`
	UserID     string   `json:"userId,omitempty"`
	Username   string   `json:"username,omitempty"`
}

func (r PostRequest) input() service.PostInput {
	return service.PostInput{
		Title:         r.Title,
		Desc:          r.Desc,
		Photo:         r.Photo,
		Categories:    r.Categories,
		ClaimedUserID: r.UserID,
	}
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body PostRequest true "Post"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts/create [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	actorID, err := sessionUser(c)
	if err != nil {
		return err
	}

	var req PostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), actorID, req.input())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Update own post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body PostRequest true "Post"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	actorID, err := sessionUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", errors.ErrPostNotFound)
	if err != nil {
		return err
	}

	var req PostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), actorID, id, req.input())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete own post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	actorID, err := sessionUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", errors.ErrPostNotFound)
	if err != nil {
		return err
	}

	if err := h.postService.DeletePost(c.Request().Context(), actorID, id); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "post has been deleted"})
}

// GetPost godoc
// @Summary Get post by id
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := pathID(c, "id", errors.ErrPostNotFound)
	if err != nil {
		return err
	}
	post, err := h.postService.GetPost(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, post)
}

// ListPosts godoc
// @Summary List posts
// @Description Newest first, optionally filtered by a title substring.
// @Tags posts
// @Produce json
// @Param search query string false "Title search"
// @Success 200 {array} model.Post
// @Router /posts/ [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.postService.ListPosts(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// ListUserPosts godoc
// @Summary List posts by author
// @Tags posts
// @Produce json
// @Param userId path string true "Author ID"
// @Success 200 {array} model.Post
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/user/{userId} [get]
func (h *PostHandler) ListUserPosts(c echo.Context) error {
	ownerID, err := pathID(c, "userId", errors.ErrUserNotFound)
	if err != nil {
		return err
	}
	posts, err := h.postService.ListUserPosts(c.Request().Context(), ownerID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, posts)
}
