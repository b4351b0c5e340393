package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storyweave/story-platform/internal/core/ports"
)

// RatingHandler handles story and chapter ratings.
type RatingHandler struct {
	service ports.RatingService
}

func NewRatingHandler(service ports.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

type ratingRequest struct {
	Value int `json:"value" validate:"required,gte=1,lte=5"`
}

type ratingStatsResponse struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// Rate handles POST /api/v1/stories/:id/ratings and
// POST /api/v1/stories/:id/chapters/:number/ratings.
//
// @Summary      Rate a story or chapter (1-5 stars, re-rating replaces)
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Story id"
// @Param        body  body      ratingRequest  true  "Star value"
// @Success      201   {object}  domain.Rating
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /stories/{id}/ratings [post]
func (h *RatingHandler) Rate(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	number, err := chapterNumberParam(c)
	if err != nil {
		return err
	}

	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := h.service.Rate(c.Request().Context(), c.Param("id"), number, req.Value, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rating)
}

// Stats handles GET /api/v1/stories/:id/ratings and
// GET /api/v1/stories/:id/chapters/:number/ratings.
//
// @Summary      Get aggregate rating for a story or chapter
// @Tags         ratings
// @Produce      json
// @Param        id  path      string  true  "Story id"
// @Success      200  {object}  ratingStatsResponse
// @Failure      404  {object}  map[string]string
// @Router       /stories/{id}/ratings [get]
func (h *RatingHandler) Stats(c echo.Context) error {
	number, err := chapterNumberParam(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), c.Param("id"), number)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratingStatsResponse{Average: stats.Average, Count: stats.Count})
}

// Mine handles GET /api/v1/stories/:id/ratings/me.
//
// @Summary      Get my rating for a story
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Story id"
// @Success      200  {object}  domain.Rating
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /stories/{id}/ratings/me [get]
func (h *RatingHandler) Mine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	number, err := chapterNumberParam(c)
	if err != nil {
		return err
	}

	rating, err := h.service.MyRating(c.Request().Context(), c.Param("id"), number, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rating)
}

// Unrate handles DELETE /api/v1/stories/:id/ratings.
//
// @Summary      Remove my rating from a story
// @Tags         ratings
// @Security     BearerAuth
// @Param        id  path  string  true  "Story id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /stories/{id}/ratings [delete]
func (h *RatingHandler) Unrate(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	number, err := chapterNumberParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Unrate(c.Request().Context(), c.Param("id"), number, user); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
