package domain

var roleLabels = map[Role]string{
	RoleAdmin:      "Administrator",
	RoleSupervisor: "Supervisor",
	RoleManager:    "Manager",
	RoleDeveloper:  "Developer",
	RoleData:       "Data",
	RoleProcesses:  "Processes",
}

var projectStatusLabels = map[ProjectStatus]string{
	ProjectCreated:         "Created",
	ProjectUnderEvaluation: "Under evaluation",
	ProjectApproved:        "Approved",
	ProjectInDevelopment:   "In development",
	ProjectDelivered:       "Delivered",
	ProjectValidated:       "Validated",
	ProjectPostponed:       "Postponed",
}

var areaLabels = map[Area]string{
	AreaRPA:      "RPA",
	AreaFrontend: "Frontend",
	AreaBackend:  "Backend",
	AreaScript:   "Script",
	AreaSystem:   "System",
}

var cardTypeLabels = map[CardType]string{
	TypeNewAutomation:       "New automation",
	TypeFeature:             "Feature",
	TypeBug:                 "Bug",
	TypeFullRefactor:        "Full refactor",
	TypePartialRefactor:     "Partial refactor",
	TypeProcessOptimization: "Process optimization",
	TypeFlowImprovement:     "Flow improvement",
	TypeNewScript:           "New script",
	TypeTool:                "Tool",
	TypeQuality:             "Quality",
	TypeSoftwareTesting:     "Software testing",
	TypeDataScraping:        "Data scraping",
	TypeNewDashboard:        "New dashboard",
	TypeAI:                  "AI",
	TypeAudit:               "Audit",
}

var cardStatusLabels = map[CardStatus]string{
	CardToDevelop:     "To develop",
	CardInDevelopment: "In development",
	CardBlocked:       "Blocked",
	CardInValidation:  "In validation",
	CardDone:          "Done",
	CardNotViable:     "Not viable",
}

var priorityLabels = map[Priority]string{
	PriorityLow:      "Low",
	PriorityMedium:   "Medium",
	PriorityHigh:     "High",
	PriorityAbsolute: "Absolute",
}

var todoStatusLabels = map[TodoStatus]string{
	TodoPending:   "Pending",
	TodoCompleted: "Completed",
	TodoBlocked:   "Blocked",
	TodoWarning:   "Warning",
}

var notificationTypeLabels = map[NotificationType]string{
	NotifyCardCreated:     "Card created",
	NotifyCardUpdated:     "Card updated",
	NotifyCardDeleted:     "Card deleted",
	NotifyCardMoved:       "Card moved",
	NotifyCardTodoUpdated: "Card TODO updated",
	NotifySprintCreated:   "Sprint created",
	NotifyProjectCreated:  "Project created",
	NotifyRoleChanged:     "Role changed",
	NotifyCardOverdue:     "Card overdue",
	NotifyCardDue24h:      "Card due in 24 hours",
	NotifyCardDue1h:       "Card due in 1 hour",
	NotifyCardDue10min:    "Card due in 10 minutes",
	NotifyLogCreated:      "Log created",
}

var logEventLabels = map[LogEventType]string{
	LogCreated:         "Created",
	LogMoved:           "Moved",
	LogPending:         "Pending",
	LogUpdated:         "Updated",
	LogChanged:         "Changed",
	LogAssigneeChanged: "Assignee changed",
}

// lookup returns the label for v, falling back to the raw code.
func lookup[K ~string](labels map[K]string, v K) string {
	if l, ok := labels[v]; ok {
		return l
	}
	return string(v)
}

func (r Role) Label() string { return lookup(roleLabels, r) }
func (s ProjectStatus) Label() string { return lookup(projectStatusLabels, s) }
func (a Area) Label() string { return lookup(areaLabels, a) }
func (t CardType) Label() string { return lookup(cardTypeLabels, t) }
func (s CardStatus) Label() string { return lookup(cardStatusLabels, s) }
func (p Priority) Label() string { return lookup(priorityLabels, p) }
func (s TodoStatus) Label() string { return lookup(todoStatusLabels, s) }
func (t NotificationType) Label() string { return lookup(notificationTypeLabels, t) }
func (e LogEventType) Label() string { return lookup(logEventLabels, e) }

func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

func (s ProjectStatus) Valid() bool {
	_, ok := projectStatusLabels[s]
	return ok
}

func (a Area) Valid() bool {
	_, ok := areaLabels[a]
	return ok
}

func (s CardStatus) Valid() bool {
	_, ok := cardStatusLabels[s]
	return ok
}

func (p Priority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}

func (s TodoStatus) Valid() bool {
	_, ok := todoStatusLabels[s]
	return ok
}

func (t NotificationType) Valid() bool {
	_, ok := notificationTypeLabels[t]
	return ok
}
