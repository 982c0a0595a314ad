package handlers

import (
	"net/http"

	"github.com/ecovibe/community/backend/internal/models"
	"github.com/ecovibe/community/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// EngagementHandler handles like and comment requests for both posts and stories.
// The :kind route parameter selects the aggregate ("posts" or "stories").
type EngagementHandler struct {
	engagementService *services.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(engagementService *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// RegisterEngagementRoutes registers like and comment routes
func (h *EngagementHandler) RegisterEngagementRoutes(g *echo.Group) {
	g.POST("/:kind/:id/likes/toggle", h.ToggleLike)
	g.POST("/:kind/:id/comments", h.AddComment)
	g.PUT("/:kind/:id/comments/:comment_id", h.UpdateComment)
	g.DELETE("/:kind/:id/comments/:comment_id", h.DeleteComment)
}

func contentKind(c echo.Context) (services.ContentKind, error) {
	switch c.Param("kind") {
	case "posts":
		return services.ContentKindPost, nil
	case "stories":
		return services.ContentKindStory, nil
	default:
		return "", echo.NewHTTPError(http.StatusNotFound, "Unknown content kind")
	}
}

// ToggleLike flips the principal's membership in the content's likes set
func (h *EngagementHandler) ToggleLike(c echo.Context) error {
	p, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	kind, err := contentKind(c)
	if err != nil {
		return err
	}

	liked, err := h.engagementService.ToggleLike(c.Request().Context(), p, kind, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"liked": liked}})
}

// AddComment appends a comment to the content
func (h *EngagementHandler) AddComment(c echo.Context) error {
	p, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	kind, err := contentKind(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.engagementService.AddComment(c.Request().Context(), p, kind, c.Param("id"), req.Text)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"comment": comment}})
}

// UpdateComment edits the principal's own comment
func (h *EngagementHandler) UpdateComment(c echo.Context) error {
	p, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	kind, err := contentKind(c)
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.engagementService.UpdateComment(c.Request().Context(), p, kind, c.Param("id"), c.Param("comment_id"), req.Text)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"updated": true}})
}

// DeleteComment removes the principal's own comment
func (h *EngagementHandler) DeleteComment(c echo.Context) error {
	p, ok := principalFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	kind, err := contentKind(c)
	if err != nil {
		return err
	}

	err = h.engagementService.DeleteComment(c.Request().Context(), p, kind, c.Param("id"), c.Param("comment_id"))
	if err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
