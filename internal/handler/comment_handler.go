package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"blogapp/internal/errors"
	"blogapp/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest is the body of POST /comments/create. Author and
// UserID are accepted for client compatibility and never trusted.
type CreateCommentRequest struct {
	Comment string `json:"comment" validate:"required,max=2000"`
	PostID  string `json:"postId" validate:"required,uuid"`
	Author  string `json:"author,omitempty"`
	UserID  string `json:"userId,omitempty"`
}

// UpdateCommentRequest is the body of PUT /comments/:id.
type UpdateCommentRequest struct {
	Comment string `json:"comment" validate:"required,max=2000"`
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param request body CreateCommentRequest true "Comment"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/create [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	actorID, err := sessionUser(c)
	if err != nil {
		return err
	}

	var req CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return validationFailed(err)
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), actorID, postID, req.Comment, req.UserID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary Edit own comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param request body UpdateCommentRequest true "Comment"
// @Success 200 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	actorID, err := sessionUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", errors.ErrCommentNotFound)
	if err != nil {
		return err
	}

	var req UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.UpdateComment(c.Request().Context(), actorID, id, req.Comment)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete own comment
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	actorID, err := sessionUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", errors.ErrCommentNotFound)
	if err != nil {
		return err
	}

	if err := h.commentService.DeleteComment(c.Request().Context(), actorID, id); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "comment has been deleted"})
}

// ListPostComments godoc
// @Summary List comments of a post
// @Description Oldest first.
// @Tags comments
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {array} model.Comment
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/post/{postId} [get]
func (h *CommentHandler) ListPostComments(c echo.Context) error {
	postID, err := pathID(c, "postId", errors.ErrPostNotFound)
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListPostComments(c.Request().Context(), postID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, comments)
}
