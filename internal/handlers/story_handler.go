package handlers

import (
	"net/http"

	"github.com/ecovibe/community/backend/internal/models"
	"github.com/ecovibe/community/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyService *services.StoryService
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyService *services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories", h.CreateStory)
	g.GET("/stories", h.GetStories)
	g.POST("/stories/:id/archive", h.ToggleArchive)
	g.POST("/stories/:id/share", h.ShareStory)
	g.DELETE("/stories/:id", h.DeleteStory)
}

// CreateStory uploads a new story for the principal
func (h *StoryHandler) CreateStory(c echo.Context) error {
	p, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	story, err := h.storyService.CreateStory(c.Request().Context(), p, req.MediaURL, req.MediaContentType)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"story": story}})
}

// GetStories retrieves stories for a community, defaulting to the principal's
func (h *StoryHandler) GetStories(c echo.Context) error {
	p, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	community := c.QueryParam("community")
	if community == "" {
		community = p.Community()
	}

	stories, err := h.storyService.ListStories(c.Request().Context(), community)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"stories": stories}})
}

// ToggleArchive flips the archive flag on the principal's own story
func (h *StoryHandler) ToggleArchive(c echo.Context) error {
	p, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	archived, err := h.storyService.ToggleArchive(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"is_archived": archived}})
}

// ShareStory bumps the story's share counter
func (h *StoryHandler) ShareStory(c echo.Context) error {
	p, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.storyService.ShareStory(c.Request().Context(), p, c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"shared": true}})
}

// DeleteStory deletes the principal's own story
func (h *StoryHandler) DeleteStory(c echo.Context) error {
	p, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.storyService.DeleteStory(c.Request().Context(), p, c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
