package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

type CustomComplexityItem struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

// Complexity is the effort breakdown chosen for a card.
type Complexity struct {
	SelectedItems       []string               `json:"selected_items"`
	SelectedDevelopment string                 `json:"selected_development"`
	CustomItems         []CustomComplexityItem `json:"custom_items"`
}

// Development size ids. They double as checklist item ids.
const (
	DevelopmentBasic  = "development_basic"
	DevelopmentMedium = "development_medium"
	DevelopmentHard   = "development_hard"
)

type ComplexityItem struct {
	Label string
	Hours float64
}

// ComplexityCatalog maps the known complexity ids to label and hours.
var ComplexityCatalog = map[string]ComplexityItem{
	"read_script":       {Label: "Read script and check the video details", Hours: 1},
	"request_user":      {Label: "Request user / VM creation", Hours: 1},
	"initial_tests":     {Label: "Initial tests on the machine", Hours: 3},
	"configure_project": {Label: "Configure project on the VM", Hours: 1},
	DevelopmentBasic:    {Label: "Basic development", Hours: 8},
	DevelopmentMedium:   {Label: "Medium development", Hours: 24},
	DevelopmentHard:     {Label: "Hard development", Hours: 40},
}

// IsDevelopmentSize reports whether id is one of the development size ids.
func IsDevelopmentSize(id string) bool {
	return id == DevelopmentBasic || id == DevelopmentMedium || id == DevelopmentHard
}

// Normalize returns c with nil slices replaced by empty ones.
func (c Complexity) Normalize() Complexity {
	if c.SelectedItems == nil {
		c.SelectedItems = []string{}
	}
	if c.CustomItems == nil {
		c.CustomItems = []CustomComplexityItem{}
	}
	return c
}

func (c Complexity) Clone() Complexity {
	return Complexity{
		SelectedItems:       append([]string{}, c.SelectedItems...),
		SelectedDevelopment: c.SelectedDevelopment,
		CustomItems:         append([]CustomComplexityItem{}, c.CustomItems...),
	}
}

// Equal compares by value; nil and empty slices are equal.
func (c Complexity) Equal(o Complexity) bool {
	return c.SelectedDevelopment == o.SelectedDevelopment &&
		slices.Equal(c.SelectedItems, o.SelectedItems) &&
		slices.Equal(c.CustomItems, o.CustomItems)
}

func (c Complexity) IsEmpty() bool {
	return len(c.SelectedItems) == 0 && c.SelectedDevelopment == "" && len(c.CustomItems) == 0
}

// Selects reports whether id was picked, either as an item or as the
// development size.
func (c Complexity) Selects(id string) bool {
	return slices.Contains(c.SelectedItems, id) || c.SelectedDevelopment == id
}

// Lines renders one entry per selected item, then the development size when
// it is not already listed, then the custom items.
func (c Complexity) Lines() []string {
	var lines []string
	for _, id := range c.SelectedItems {
		lines = append(lines, complexityLine(id))
	}
	if c.SelectedDevelopment != "" && !slices.Contains(c.SelectedItems, c.SelectedDevelopment) {
		lines = append(lines, complexityLine(c.SelectedDevelopment))
	}
	for _, item := range c.CustomItems {
		label := item.Label
		if label == "" {
			label = "Custom item"
		}
		lines = append(lines, fmt.Sprintf("%s: %sh", label, formatHours(item.Hours)))
	}
	return lines
}

func complexityLine(id string) string {
	if item, ok := ComplexityCatalog[id]; ok {
		return fmt.Sprintf("%s: %sh", item.Label, formatHours(item.Hours))
	}
	return HumanizeID(id)
}

// HumanizeID turns "some_item_id" into "Some Item Id".
func HumanizeID(id string) string {
	words := strings.Fields(strings.ReplaceAll(id, "_", " "))
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
