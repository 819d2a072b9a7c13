package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/contract"
	"github.com/alexanderramin/sprintdesk/internal/push"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/gin-gonic/gin"
)

func (h *handler) listNotifications(c *gin.Context) {
	f := repository.NotificationFilter{
		MineOnly:   c.Query("filter") == "mine",
		UnreadOnly: c.Query("unread") == "true",
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(c, fmt.Errorf("limit must be a positive integer"))
			return
		}
		f.Limit = n
	}
	ns, err := h.Notifications.List(c.Request.Context(), currentUser(c), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.NewNotificationList(ns))
}

func (h *handler) unreadCounts(c *gin.Context) {
	counts, err := h.Notifications.UnreadCounts(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *handler) markRead(c *gin.Context) {
	if err := h.Notifications.MarkRead(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) markAllRead(c *gin.Context) {
	n, err := h.Notifications.MarkAllRead(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.MarkedRead{Updated: n})
}

// stream relays the user's push channel as server-sent events until the
// client goes away or the hub closes the channel.
func (h *handler) stream(c *gin.Context) {
	if h.Push == nil {
		c.AbortWithStatus(http.StatusNotImplemented)
		return
	}
	msgs, cancel := h.Push.Subscribe(push.Channel(currentUser(c)))
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	sse := &sseWriter{w: c.Writer, f: c.Writer}
	sse.event("ready", []byte("{}"))

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()
	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			sse.event("notification", msg)
		case <-ticker.C:
			sse.event("ping", []byte("{}"))
		}
	}
}

type sseWriter struct {
	w io.Writer
	f http.Flusher
}

func (s *sseWriter) event(name string, data []byte) {
	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", name, data)
	s.f.Flush()
}
