package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storyweave/story-platform/internal/core/domain"
	"github.com/storyweave/story-platform/internal/core/ports"
)

// CommentHandler handles story and chapter comments.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type commentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type listCommentsResponse struct {
	Data       []*domain.Comment  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// chapterNumberParam parses the optional :number path segment; 0 selects
// story-level comments.
func chapterNumberParam(c echo.Context) (int, error) {
	raw := c.Param("number")
	if raw == "" {
		return 0, nil
	}
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid chapter number")
	}
	return number, nil
}

// Create handles POST /api/v1/stories/:id/comments and
// POST /api/v1/stories/:id/chapters/:number/comments.
//
// @Summary      Comment on a story or chapter
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Story id"
// @Param        body  body      commentRequest  true  "Comment content"
// @Success      201   {object}  domain.Comment
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /stories/{id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	number, err := chapterNumberParam(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.Create(c.Request().Context(), c.Param("id"), number, req.Content, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// List handles GET /api/v1/stories/:id/comments and
// GET /api/v1/stories/:id/chapters/:number/comments.
//
// @Summary      List comments on a story or chapter
// @Tags         comments
// @Produce      json
// @Param        id     path      string  true   "Story id"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Items per page"
// @Success      200    {object}  listCommentsResponse
// @Router       /stories/{id}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	number, err := chapterNumberParam(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListCommentsFilter{
		StoryID:       c.Param("id"),
		ChapterNumber: number,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listCommentsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Update handles PUT /api/v1/comments/:id.
//
// @Summary      Edit a comment (author only)
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Comment id"
// @Param        body  body      commentRequest  true  "New content"
// @Success      200   {object}  domain.Comment
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /comments/{id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.Update(c.Request().Context(), c.Param("id"), req.Content, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /api/v1/comments/:id.
//
// @Summary      Delete a comment (author only)
// @Tags         comments
// @Security     BearerAuth
// @Param        id  path  string  true  "Comment id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), user); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
