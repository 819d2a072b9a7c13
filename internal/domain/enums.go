package domain

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
	RoleDeveloper  Role = "developer"
	RoleData       Role = "data"
	RoleProcesses  Role = "processes"
)

// CanFinalizeSprints reports whether the role may finalize sprints and
// close or reopen weeks.
func (r Role) CanFinalizeSprints() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

type ProjectStatus string

const (
	ProjectCreated         ProjectStatus = "created"
	ProjectUnderEvaluation ProjectStatus = "under_evaluation"
	ProjectApproved        ProjectStatus = "approved"
	ProjectInDevelopment   ProjectStatus = "in_development"
	ProjectDelivered       ProjectStatus = "delivered"
	ProjectValidated       ProjectStatus = "validated"
	ProjectPostponed       ProjectStatus = "postponed"
)

type Area string

const (
	AreaRPA      Area = "rpa"
	AreaFrontend Area = "frontend"
	AreaBackend  Area = "backend"
	AreaScript   Area = "script"
	AreaSystem   Area = "system"
)

// CardType is an open set: unknown codes are stored and shown verbatim.
type CardType string

const (
	TypeNewAutomation       CardType = "new_automation"
	TypeFeature             CardType = "feature"
	TypeBug                 CardType = "bug"
	TypeFullRefactor        CardType = "full_refactor"
	TypePartialRefactor     CardType = "partial_refactor"
	TypeProcessOptimization CardType = "process_optimization"
	TypeFlowImprovement     CardType = "flow_improvement"
	TypeNewScript           CardType = "new_script"
	TypeTool                CardType = "tool"
	TypeQuality             CardType = "quality"
	TypeSoftwareTesting     CardType = "software_testing"
	TypeDataScraping        CardType = "data_scraping"
	TypeNewDashboard        CardType = "new_dashboard"
	TypeAI                  CardType = "ai"
	TypeAudit               CardType = "audit"
)

type CardStatus string

const (
	CardToDevelop     CardStatus = "to_develop"
	CardInDevelopment CardStatus = "in_development"
	CardBlocked       CardStatus = "blocked"
	CardInValidation  CardStatus = "in_validation"
	CardDone          CardStatus = "done"
	CardNotViable     CardStatus = "not_viable"
)

// IsClosed reports whether the status ends a card's lifecycle.
func (s CardStatus) IsClosed() bool {
	return s == CardDone || s == CardNotViable
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityAbsolute Priority = "absolute"
)

type TodoStatus string

const (
	TodoPending   TodoStatus = "pending"
	TodoCompleted TodoStatus = "completed"
	TodoBlocked   TodoStatus = "blocked"
	TodoWarning   TodoStatus = "warning"
)

type NotificationType string

const (
	NotifyCardCreated     NotificationType = "card_created"
	NotifyCardUpdated     NotificationType = "card_updated"
	NotifyCardDeleted     NotificationType = "card_deleted"
	NotifyCardMoved       NotificationType = "card_moved"
	NotifyCardTodoUpdated NotificationType = "card_todo_updated"
	NotifySprintCreated   NotificationType = "sprint_created"
	NotifyProjectCreated  NotificationType = "project_created"
	NotifyRoleChanged     NotificationType = "role_changed"
	NotifyCardOverdue     NotificationType = "card_overdue"
	NotifyCardDue24h      NotificationType = "card_due_24h"
	NotifyCardDue1h       NotificationType = "card_due_1h"
	NotifyCardDue10min    NotificationType = "card_due_10min"
	NotifyLogCreated      NotificationType = "log_created"
)

type LogEventType string

const (
	LogCreated         LogEventType = "created"
	LogMoved           LogEventType = "moved"
	LogPending         LogEventType = "pending"
	LogUpdated         LogEventType = "updated"
	LogChanged         LogEventType = "changed"
	LogAssigneeChanged LogEventType = "assignee_changed"
)

// SuggestionsProjectName is the project that collects demands raised by
// non-developers. Cards in it follow stricter edit rules.
const SuggestionsProjectName = "Suggestions"
