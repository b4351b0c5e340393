package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storyweave/story-platform/internal/api/metrics"
	"github.com/storyweave/story-platform/internal/core/domain"
	"github.com/storyweave/story-platform/internal/core/ports"
)

// StoryHandler handles HTTP requests for stories and chapters.
type StoryHandler struct {
	service ports.StoryService
}

func NewStoryHandler(service ports.StoryService) *StoryHandler {
	return &StoryHandler{service: service}
}

// List handles GET /api/v1/stories.
//
// @Summary      List stories
// @Tags         stories
// @Produce      json
// @Param        genre   query     string  false  "Filter by genre"
// @Param        tag     query     string  false  "Filter by tag"
// @Param        q       query     string  false  "Search in title, synopsis, author display name"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Items per page (max 100)"
// @Success      200     {object}  listStoriesResponse
// @Router       /stories [get]
func (h *StoryHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListStoriesFilter{
		Genre:  c.QueryParam("genre"),
		Tag:    c.QueryParam("tag"),
		Search: c.QueryParam("q"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listStoriesResponse{
		Data: toStorySummaries(result.Items),
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Search handles GET /api/v1/stories/search.
//
// @Summary      Search stories
// @Tags         stories
// @Produce      json
// @Param        q      query     string  true  "Search query"
// @Param        page   query     int     false "Page (1-based)"
// @Param        limit  query     int     false "Items per page"
// @Success      200    {object}  listStoriesResponse
// @Router       /stories/search [get]
func (h *StoryHandler) Search(c echo.Context) error {
	if c.QueryParam("q") == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	return h.List(c)
}

// TopRated handles GET /api/v1/stories/top.
//
// @Summary      List top rated stories
// @Tags         stories
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of stories (default 10)"
// @Success      200    {array}   storySummaryResponse
// @Router       /stories/top [get]
func (h *StoryHandler) TopRated(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	stories, err := h.service.TopRated(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStorySummaries(stories))
}

// ByAuthor handles GET /api/v1/stories/author/:username.
//
// @Summary      List stories by author username
// @Tags         stories
// @Produce      json
// @Param        username  path      string  true  "Author username"
// @Success      200       {object}  listStoriesResponse
// @Router       /stories/author/{username} [get]
func (h *StoryHandler) ByAuthor(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListStoriesFilter{
		AuthorUsername: c.Param("username"),
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listStoriesResponse{
		Data: toStorySummaries(result.Items),
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Mine handles GET /api/v1/stories/me, the authenticated author's stories.
//
// @Summary      List my stories
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listStoriesResponse
// @Failure      401  {object}  map[string]string
// @Router       /stories/me [get]
func (h *StoryHandler) Mine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), ports.ListStoriesFilter{
		AuthorUsername: user.Username,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listStoriesResponse{
		Data: toStorySummaries(result.Items),
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /api/v1/stories/:id.
//
// @Summary      Get a story by id
// @Tags         stories
// @Produce      json
// @Param        id   path      string  true  "Story id"
// @Success      200  {object}  storyResponse
// @Failure      404  {object}  map[string]string
// @Router       /stories/{id} [get]
func (h *StoryHandler) Get(c echo.Context) error {
	story, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStoryResponse(story))
}

// GetOwned handles GET /api/v1/stories/:id/ownership. The story is returned
// only when the Authorization header proves the caller owns it.
//
// @Summary      Get a story with an ownership check
// @Tags         stories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Story id"
// @Success      200  {object}  storyResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /stories/{id}/ownership [get]
func (h *StoryHandler) GetOwned(c echo.Context) error {
	story, err := h.service.AssertOwnership(c.Request().Context(), c.Param("id"), c.Request().Header.Get("Authorization"))
	if err != nil {
		if errors.Is(err, domain.ErrNotOwner) {
			metrics.OwnershipDenialsTotal.Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, toStoryResponse(story))
}

// Create handles POST /api/v1/stories.
//
// @Summary      Create a story
// @Tags         stories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStoryRequest  true  "Story details"
// @Success      201   {object}  storyResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /stories [post]
func (h *StoryHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	story, err := h.service.Create(c.Request().Context(), ports.CreateStoryInput{
		Title:    req.Title,
		Synopsis: req.Synopsis,
		Genres:   req.Genres,
		Tags:     req.Tags,
		Author:   user,
	})
	if err != nil {
		return err
	}

	metrics.StoriesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toStoryResponse(story))
}

// Update handles PUT /api/v1/stories/:id.
//
// @Summary      Replace a story's own fields (owner only)
// @Tags         stories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Story id"
// @Param        body  body      updateStoryRequest  true  "New story fields"
// @Success      200   {object}  storyResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /stories/{id} [put]
func (h *StoryHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	story, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateStoryInput{
		Title:    req.Title,
		Synopsis: req.Synopsis,
		Genres:   req.Genres,
		Tags:     req.Tags,
	}, user)
	if err != nil {
		if errors.Is(err, domain.ErrNotOwner) {
			metrics.OwnershipDenialsTotal.Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, toStoryResponse(story))
}

// UpdateMetadata handles PUT /api/v1/stories/:id/metadata.
//
// @Summary      Update story metadata (owner only, partial)
// @Tags         stories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Story id"
// @Param        body  body      updateStoryMetadataRequest  true  "Fields to update"
// @Success      200   {object}  storyResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /stories/{id}/metadata [put]
func (h *StoryHandler) UpdateMetadata(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateStoryMetadataRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	story, err := h.service.UpdateMetadata(c.Request().Context(), c.Param("id"), ports.UpdateStoryInput{
		Title:    req.Title,
		Synopsis: req.Synopsis,
		Genres:   req.Genres,
		Tags:     req.Tags,
	}, user)
	if err != nil {
		if errors.Is(err, domain.ErrNotOwner) {
			metrics.OwnershipDenialsTotal.Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, toStoryResponse(story))
}

// Delete handles DELETE /api/v1/stories/:id.
//
// @Summary      Delete a story (owner only)
// @Tags         stories
// @Security     BearerAuth
// @Param        id  path  string  true  "Story id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /stories/{id} [delete]
func (h *StoryHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), user); err != nil {
		if errors.Is(err, domain.ErrNotOwner) {
			metrics.OwnershipDenialsTotal.Inc()
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddChapter handles POST /api/v1/stories/:id/chapters.
//
// @Summary      Append a chapter to a story (owner only)
// @Tags         chapters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Story id"
// @Param        body  body      chapterRequest  true  "Chapter content"
// @Success      201   {object}  chapterResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /stories/{id}/chapters [post]
func (h *StoryHandler) AddChapter(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req chapterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	chapter, err := h.service.AddChapter(c.Request().Context(), c.Param("id"), ports.ChapterInput{
		Title:   req.Title,
		Content: req.Content,
	}, user)
	if err != nil {
		if errors.Is(err, domain.ErrNotOwner) {
			metrics.OwnershipDenialsTotal.Inc()
		}
		return err
	}

	return c.JSON(http.StatusCreated, toChapterResponse(*chapter))
}

// UpdateChapter handles PUT /api/v1/stories/:id/chapters/:number.
//
// @Summary      Edit a chapter (owner only)
// @Tags         chapters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string          true  "Story id"
// @Param        number  path      int             true  "Chapter number"
// @Param        body    body      chapterRequest  true  "New chapter content"
// @Success      200     {object}  chapterResponse
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /stories/{id}/chapters/{number} [put]
func (h *StoryHandler) UpdateChapter(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chapter number")
	}

	var req chapterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	chapter, err := h.service.UpdateChapter(c.Request().Context(), c.Param("id"), number, ports.ChapterInput{
		Title:   req.Title,
		Content: req.Content,
	}, user)
	if err != nil {
		if errors.Is(err, domain.ErrNotOwner) {
			metrics.OwnershipDenialsTotal.Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, toChapterResponse(*chapter))
}
