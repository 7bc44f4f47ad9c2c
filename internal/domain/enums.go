package domain

// TransitionMode controls what happens when a lead enters a stage.
type TransitionMode string

const (
	TransitionModeNone      TransitionMode = "none"
	TransitionModeManual    TransitionMode = "manual"
	TransitionModeAutomatic TransitionMode = "automatic"
)

func (m TransitionMode) String() string { return string(m) }

func (m TransitionMode) IsValid() bool {
	switch m {
	case TransitionModeNone, TransitionModeManual, TransitionModeAutomatic:
		return true
	}
	return false
}

// ActivityType is the kind of event or task attached to a lead.
type ActivityType string

const (
	ActivityTypeNote     ActivityType = "note"
	ActivityTypeCall     ActivityType = "call"
	ActivityTypeEmail    ActivityType = "email"
	ActivityTypeWhatsApp ActivityType = "whatsapp"
	ActivityTypeTask     ActivityType = "task"
)

func (t ActivityType) String() string { return string(t) }

func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypeNote, ActivityTypeCall, ActivityTypeEmail, ActivityTypeWhatsApp, ActivityTypeTask:
		return true
	}
	return false
}

// ActivityStatus is the completion state of an activity.
type ActivityStatus string

const (
	ActivityStatusOpen      ActivityStatus = "open"
	ActivityStatusCompleted ActivityStatus = "completed"
)

func (s ActivityStatus) String() string { return string(s) }

func (s ActivityStatus) IsValid() bool {
	switch s {
	case ActivityStatusOpen, ActivityStatusCompleted:
		return true
	}
	return false
}

// ActivityPriority orders activities for follow-up.
type ActivityPriority string

const (
	ActivityPriorityLow    ActivityPriority = "low"
	ActivityPriorityMedium ActivityPriority = "medium"
	ActivityPriorityHigh   ActivityPriority = "high"
)

func (p ActivityPriority) String() string { return string(p) }

func (p ActivityPriority) IsValid() bool {
	switch p {
	case ActivityPriorityLow, ActivityPriorityMedium, ActivityPriorityHigh:
		return true
	}
	return false
}

// Role is a caller's authorization level inside a workspace.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	return r.rank() > 0
}

// Allows reports whether r grants at least the permissions of min.
func (r Role) Allows(min Role) bool {
	return r.rank() >= min.rank() && r.rank() > 0
}

func (r Role) rank() int {
	switch r {
	case RoleViewer:
		return 1
	case RoleMember:
		return 2
	case RoleAdmin:
		return 3
	}
	return 0
}

// IngestStatus is the outcome of a webhook ingestion.
type IngestStatus string

const (
	IngestStatusCreated IngestStatus = "created"
	IngestStatusUpdated IngestStatus = "updated"
)

func (s IngestStatus) String() string { return string(s) }

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeLead     EntityType = "LEAD"
	EntityTypeStage    EntityType = "STAGE"
	EntityTypeActivity EntityType = "ACTIVITY"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeLead, EntityTypeStage, EntityTypeActivity:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate   AuditAction = "CREATE"
	AuditActionUpdate   AuditAction = "UPDATE"
	AuditActionTransfer AuditAction = "TRANSFER"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionTransfer:
		return true
	}
	return false
}
