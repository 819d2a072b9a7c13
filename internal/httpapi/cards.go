package httpapi

import (
	"net/http"

	"github.com/alexanderramin/sprintdesk/internal/contract"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/gin-gonic/gin"
)

func (h *handler) createCard(c *gin.Context) {
	var req contract.CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	card := &domain.Card{}
	if err := req.Apply(card); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Cards.Create(c.Request.Context(), currentUser(c), card); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract.NewCard(card))
}

func (h *handler) updateCard(c *gin.Context) {
	var req contract.CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	card, err := h.Cards.GetByID(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := req.Apply(card); err != nil {
		badRequest(c, err)
		return
	}
	change, err := h.Cards.Update(ctx, currentUser(c), card)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.NewCardUpdate(card, change))
}

func (h *handler) deleteCard(c *gin.Context) {
	if err := h.Cards.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listTodos(c *gin.Context) {
	todos, err := h.Todos.ListByCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]contract.Todo, 0, len(todos))
	for _, t := range todos {
		out = append(out, contract.NewTodo(t))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *handler) createTodo(c *gin.Context) {
	var req contract.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	todo := &domain.CardTodo{CardID: c.Param("id")}
	req.Apply(todo)
	if err := h.Todos.Create(c.Request.Context(), currentUser(c), todo); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract.NewTodo(todo))
}

func (h *handler) updateTodo(c *gin.Context) {
	var req contract.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	todo, err := h.Todos.GetByID(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	req.Apply(todo)
	if _, err := h.Todos.Update(ctx, currentUser(c), todo); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.NewTodo(todo))
}

func (h *handler) deleteTodo(c *gin.Context) {
	if err := h.Todos.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
