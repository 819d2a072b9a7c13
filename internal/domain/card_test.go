package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)

func TestCardStatus_IsClosed(t *testing.T) {
	cases := []struct {
		status CardStatus
		closed bool
	}{
		{CardToDevelop, false},
		{CardInDevelopment, false},
		{CardBlocked, false},
		{CardInValidation, false},
		{CardDone, true},
		{CardNotViable, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.closed, tc.status.IsClosed(), "status=%s", tc.status)
	}
}

func TestCard_ApplyDefaults(t *testing.T) {
	c := &Card{Name: "Invoice bot", ProjectID: "p1"}
	c.ApplyDefaults()

	assert.Equal(t, AreaBackend, c.Area)
	assert.Equal(t, CardToDevelop, c.Status)
	assert.Equal(t, PriorityMedium, c.Priority)
	assert.NotNil(t, c.Complexity.SelectedItems)
	assert.NotNil(t, c.Complexity.CustomItems)
	require.NoError(t, c.Validate())
}

func TestCard_Validate(t *testing.T) {
	base := func() *Card {
		c := &Card{Name: "X", ProjectID: "p1"}
		c.ApplyDefaults()
		return c
	}

	c := base()
	c.Name = "   "
	assert.ErrorContains(t, c.Validate(), "name is required")

	c = base()
	c.Priority = "urgent"
	assert.ErrorContains(t, c.Validate(), "invalid priority")

	c = base()
	c.Type = "something_new"
	assert.NoError(t, c.Validate(), "card types are an open set")

	c = base()
	start := testNow
	end := testNow.Add(-time.Hour)
	c.StartAt, c.EndAt = &start, &end
	assert.ErrorContains(t, c.Validate(), "before start")
}

func TestCard_CopyTo(t *testing.T) {
	assignee := "dev-1"
	creator := "creator-1"
	end := testNow.Add(48 * time.Hour)
	orig := &Card{
		ID: "c1", ProjectID: "p1", Name: "Scraper", Description: "desc",
		Area: AreaRPA, Type: TypeDataScraping, Status: CardBlocked, Priority: PriorityHigh,
		AssigneeID: &assignee, CreatorID: &creator, EndAt: &end,
		Complexity: Complexity{SelectedItems: []string{"read_script"}, SelectedDevelopment: DevelopmentMedium},
		Comment:    "waiting on credentials",
	}

	cp := orig.CopyTo("c2", "p2", "actor-1", testNow)
	assert.Equal(t, "c2", cp.ID)
	assert.Equal(t, "p2", cp.ProjectID)
	assert.Equal(t, CardBlocked, cp.Status)
	assert.Equal(t, "waiting on credentials", cp.Comment)
	assert.Equal(t, "actor-1", *cp.CreatorID)
	assert.Equal(t, "dev-1", *cp.AssigneeID)
	assert.True(t, orig.Complexity.Equal(cp.Complexity))

	cp.Complexity.SelectedItems[0] = "changed"
	assert.Equal(t, "read_script", orig.Complexity.SelectedItems[0], "copy must not alias the original")

	kept := orig.CopyTo("c3", "p2", "", testNow)
	assert.Equal(t, "creator-1", *kept.CreatorID)
}

func TestLabels_FallBackToCode(t *testing.T) {
	assert.Equal(t, "In validation", CardInValidation.Label())
	assert.Equal(t, "Data scraping", TypeDataScraping.Label())
	assert.Equal(t, "mystery", CardType("mystery").Label())
	assert.Equal(t, "Card due in 10 minutes", NotifyCardDue10min.Label())
	assert.False(t, Role("root").Valid())
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Ana Souza", (&User{Username: "ana", FirstName: "Ana", LastName: "Souza"}).DisplayName())
	assert.Equal(t, "Ana", (&User{Username: "ana", FirstName: "Ana"}).DisplayName())
	assert.Equal(t, "Souza", (&User{Username: "ana", LastName: "Souza"}).DisplayName())
	assert.Equal(t, "ana", (&User{Username: "ana"}).DisplayName())
}
