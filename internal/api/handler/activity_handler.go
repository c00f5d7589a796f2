package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/syncspace/edge-gateway/internal/core/ports"
)

type ActivityHandler struct {
	activity ports.ActivityService
}

func NewActivityHandler(activity ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// Recent serves the admin activity feed: recent auth-surface entries plus
// per-action totals.
//
// @Summary      Admin activity feed
// @Tags         admin
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries to return"
// @Success      200    {object}  ports.ActivityFeed
// @Failure      500    {object}  map[string]string
// @Router       /api/admin/activity [get]
func (h *ActivityHandler) Recent(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	feed, err := h.activity.Feed(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feed)
}
