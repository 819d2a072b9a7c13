package domain

import (
	"fmt"
	"strings"
	"time"
)

type CardTodo struct {
	ID         string
	CardID     string
	Label      string
	IsOriginal bool
	Status     TodoStatus
	Comment    string
	Order      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t *CardTodo) Validate() error {
	if strings.TrimSpace(t.Label) == "" {
		return fmt.Errorf("todo label is required")
	}
	if !t.Status.Valid() {
		return fmt.Errorf("invalid todo status %q", t.Status)
	}
	return nil
}

// TemplateItem is one entry of an area checklist.
type TemplateItem struct {
	ID    string
	Label string
}

var automationChecklist = []TemplateItem{
	{"read_script_check", "Read script and check the video details"},
	{"request_vm_user", "Request a user to access the VM"},
	{"initial_local_tests", "Initial tests on the local machine"},
	{"configure_vm_project", "Configure project on the VM"},
	{DevelopmentBasic, "Development (basic)"},
	{DevelopmentMedium, "Development (medium)"},
	{DevelopmentHard, "Development (hard)"},
	{"acceptance_tests_error_mapping", "Acceptance tests and error mapping"},
	{"documentation", "Documentation"},
	{"code_review_fixes", "Code review fixes"},
}

var todoTemplates = map[Area][]TemplateItem{
	AreaBackend: {
		{"database_modeling", "Database modeling (models)"},
		{"repository_interfaces", "Repository interfaces and implementations"},
		{"use_cases", "Use cases"},
		{"dependency_registration", "Dependency registration in containers"},
		{"serializers", "Serializers"},
		{"views_urls", "Views and URLs"},
		{"permissions", "Permissions"},
		{"unit_tests", "Unit and coverage tests"},
		{"manual_tests", "Manual tests (Postman / Insomnia)"},
		{"api_docs", "API documentation update"},
		{"pull_request_review", "Pull request and code review adjustments"},
		{"deploy_staging", "Build and deploy to staging"},
		{"deploy_production", "Build and deploy to production"},
		{"pull_on_vm", "Pull the application on the VM"},
	},
	AreaFrontend: {
		{"contracts", "Define and validate contracts (interfaces)"},
		{"repository_service", "Build repository / service"},
		{"use_cases", "Build use cases"},
		{"ui_independence", "Keep the UI independent from use cases"},
		{"unit_tests", "Unit tests (use cases / services / repositories)"},
		{"contract_adjustments", "Contract and business rule adjustments"},
		{"shared_components", "Shared components (design system)"},
		{"screen", "Build the screen"},
		{"states", "Loading, error and empty states"},
		{"responsiveness", "Responsiveness adjustments"},
		{"backend_integration", "Backend integration"},
		{"dto_adapter", "DTO mapping through adapters"},
		{"functional_tests", "Test main flows and edge cases"},
		{"ux_validation", "Visual and UX validation"},
		{"code_review", "Code review"},
		{"code_review_fixes", "Apply code review fixes"},
		{"deploy_production", "Build and deploy to production"},
		{"pull_on_vm", "Pull the application on the VM"},
	},
	AreaRPA:    automationChecklist,
	AreaSystem: automationChecklist,
	AreaScript: automationChecklist,
}

// TodoTemplate returns the checklist for area, empty for unknown areas.
func TodoTemplate(area Area) []TemplateItem {
	return todoTemplates[area]
}

// PlanTodos returns the checklist items to instantiate for a new card.
// Development size items are kept only when the card's complexity selects
// them; everything else is always kept.
func PlanTodos(area Area, c Complexity) []TemplateItem {
	var out []TemplateItem
	for _, item := range TodoTemplate(area) {
		if IsDevelopmentSize(item.ID) && !c.Selects(item.ID) {
			continue
		}
		out = append(out, item)
	}
	return out
}
