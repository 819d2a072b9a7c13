package changes

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func baseCard() *domain.Card {
	c := &domain.Card{
		ID:          "c1",
		ProjectID:   "p1",
		Name:        "Invoice bot",
		Description: "Reads invoices",
		Area:        domain.AreaRPA,
		Type:        domain.TypeNewAutomation,
		Status:      domain.CardToDevelop,
		Priority:    domain.PriorityMedium,
	}
	c.ApplyDefaults()
	return c
}

var names = Names{"u1": "Ana Souza", "u2": "Bruno Lima"}

func TestDetectCard_NilSnapshotIsCreation(t *testing.T) {
	change := DetectCard(nil, baseCard(), names)
	assert.Equal(t, KindCreated, change.Kind)
	assert.Empty(t, change.Changes)
}

func TestDetectCard_StatusChangeIsMoveOnly(t *testing.T) {
	card := baseCard()
	snap := CaptureCard(card)

	card.Status = domain.CardInDevelopment
	card.Name = "Renamed too"
	change := DetectCard(&snap, card, names)

	assert.Equal(t, KindMoved, change.Kind)
	require.Len(t, change.Changes, 1)
	assert.Equal(t, `moved from "To develop" to "In development"`, change.Changes[0])
	assert.Equal(t, domain.CardToDevelop, change.OldStatus)
	assert.Equal(t, domain.CardInDevelopment, change.NewStatus)
}

func TestDetectCard_NoChanges(t *testing.T) {
	card := baseCard()
	card.Comment = "note"
	snap := CaptureCard(card)

	card.Comment = "  note  "
	card.Name = "Invoice bot "
	change := DetectCard(&snap, card, names)

	assert.Equal(t, KindNone, change.Kind)
	assert.Empty(t, change.Changes)
	assert.False(t, change.CommentChanged)
}

func TestDetectCard_FieldDiffs(t *testing.T) {
	card := baseCard()
	card.AssigneeID = strPtr("u1")
	snap := CaptureCard(card)

	end := time.Date(2026, 3, 20, 18, 0, 0, 0, time.UTC)
	card.Priority = domain.PriorityHigh
	card.Area = domain.AreaBackend
	card.Type = "brand_new_type"
	card.AssigneeID = strPtr("u2")
	card.EndAt = &end
	change := DetectCard(&snap, card, names)

	assert.Equal(t, KindUpdated, change.Kind)
	assert.True(t, change.AssigneeChanged)
	assert.Equal(t, []string{
		"Priority: Medium → High",
		"Area: RPA → Backend",
		"Type: New automation → brand_new_type",
		"Assignee: Ana Souza → Bruno Lima",
		"End date: not set → 20/03/2026",
	}, change.Changes)
}

func TestDetectCard_AssigneeFallbacks(t *testing.T) {
	card := baseCard()
	card.AssigneeID = strPtr("ghost")
	snap := CaptureCard(card)

	card.AssigneeID = nil
	change := DetectCard(&snap, card, names)
	assert.Equal(t, []string{"Assignee: N/A → nobody"}, change.Changes)
}

func TestDetectCard_ComplexityBlockShowsNewState(t *testing.T) {
	card := baseCard()
	card.Complexity = domain.Complexity{SelectedItems: []string{"read_script"}}
	snap := CaptureCard(card)

	card.Complexity = domain.Complexity{
		SelectedItems:       []string{"read_script", "initial_tests"},
		SelectedDevelopment: domain.DevelopmentBasic,
	}
	change := DetectCard(&snap, card, names)

	require.Len(t, change.Changes, 1)
	assert.Equal(t, "Complexity:\n"+
		"  - Read script and check the video details: 1h\n"+
		"  - Initial tests on the machine: 3h\n"+
		"  - Basic development: 8h", change.Changes[0])

	snap = CaptureCard(card)
	card.Complexity = domain.Complexity{}
	change = DetectCard(&snap, card, names)
	assert.Equal(t, []string{"Complexity:\n  - none"}, change.Changes)
}

func TestDetectCard_SnapshotIsIndependentOfLaterMutation(t *testing.T) {
	card := baseCard()
	card.Complexity = domain.Complexity{SelectedItems: []string{"read_script"}}
	snap := CaptureCard(card)

	card.Complexity.SelectedItems[0] = "request_user"
	change := DetectCard(&snap, card, names)
	assert.Equal(t, KindUpdated, change.Kind)
}

func TestDetectCard_CommentChange(t *testing.T) {
	card := baseCard()
	snap := CaptureCard(card)

	card.Comment = "Blocked by infra"
	change := DetectCard(&snap, card, names)
	assert.Equal(t, KindUpdated, change.Kind)
	assert.True(t, change.CommentChanged)
	assert.Equal(t, []string{"Comment: updated"}, change.Changes)
}

func TestDetectCard_DescriptionExcerpt(t *testing.T) {
	card := baseCard()
	card.Description = ""
	snap := CaptureCard(card)

	card.Description = strings.Repeat("x", 60)
	change := DetectCard(&snap, card, names)
	require.Len(t, change.Changes, 1)
	assert.Equal(t, `Description: "(empty)" → "`+strings.Repeat("x", 50)+`..."`, change.Changes[0])
}

func TestDescribeCreated(t *testing.T) {
	card := baseCard()
	card.AssigneeID = strPtr("u1")
	card.Complexity = domain.Complexity{SelectedDevelopment: domain.DevelopmentHard}

	desc := DescribeCreated(card, names)
	assert.True(t, strings.HasPrefix(desc, `Card "Invoice bot" created with:`))
	assert.Contains(t, desc, "• Assignee: Ana Souza")
	assert.Contains(t, desc, "• Status: To develop")
	assert.Contains(t, desc, "• Complexity:\n  - Hard development: 40h")
}
