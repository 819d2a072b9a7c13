package httpapi

import (
	"net/http"

	"github.com/alexanderramin/sprintdesk/internal/contract"
	"github.com/gin-gonic/gin"
)

func (h *handler) weekStatus(c *gin.Context) {
	day, err := contract.WeekRequest{Date: c.Query("date")}.Day(h.Clock())
	if err != nil {
		badRequest(c, err)
		return
	}
	closed, err := h.Weekly.IsWeekClosed(c.Request.Context(), day)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.NewWeekStatus(day, closed))
}

func (h *handler) closeWeek(c *gin.Context) {
	h.setWeek(c, true)
}

func (h *handler) openWeek(c *gin.Context) {
	h.setWeek(c, false)
}

func (h *handler) setWeek(c *gin.Context, closed bool) {
	var req contract.WeekRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	day, err := req.Day(h.Clock())
	if err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	if closed {
		err = h.Weekly.CloseWeek(ctx, currentUser(c), day)
	} else {
		err = h.Weekly.OpenWeek(ctx, currentUser(c), day)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.NewWeekStatus(day, closed))
}
