package httpapi

import (
	"net/http"

	"github.com/alexanderramin/sprintdesk/internal/contract"
	"github.com/gin-gonic/gin"
)

func (h *handler) nextSprint(c *gin.Context) {
	ctx := c.Request.Context()
	sp, err := h.Sprints.GetByID(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	next, err := h.Sprints.NextSprint(ctx, sp)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := contract.NextSprint{SprintID: sp.ID}
	if next != nil {
		v := contract.NewSprint(next)
		out.Next = &v
	}
	c.JSON(http.StatusOK, out)
}

// finalizeSprint is restricted to supervisors and admins. Finalizing twice
// answers 200 with already_finalized set.
func (h *handler) finalizeSprint(c *gin.Context) {
	ctx := c.Request.Context()
	actor := currentUser(c)
	if _, err := h.Users.RequireSupervisor(ctx, actor); err != nil {
		h.fail(c, err)
		return
	}
	res, err := h.Sprints.Finalize(ctx, c.Param("id"), actor)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.NewFinalize(res))
}
