package model

import (
	"encoding/json"
	"time"
)

// AuditLog records one mutation made through the services.
type AuditLog struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	RequestID  string          `json:"request_id,omitempty"`
	IPAddress  string          `json:"ip_address,omitempty"`
	UserAgent  string          `json:"user_agent,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (l AuditLog) RecordID() string { return l.ID }

func (l AuditLog) WithID(id string) AuditLog {
	l.ID = id
	return l
}

const (
	// Actions
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionAssign = "assign"
	AuditActionToggle = "toggle"
	AuditActionRename = "rename"

	// Entity types
	AuditEntityPatient     = "patient"
	AuditEntityAppointment = "appointment"
	AuditEntityTreatment   = "treatment"
	AuditEntityDocument    = "document"
	AuditEntityContact     = "contact"
	AuditEntityRadiography = "radiography"
	AuditEntitySettings    = "settings"
)

type AuditFilters struct {
	EntityType string `form:"entity_type"`
	EntityID   string `form:"entity_id"`
	Action     string `form:"action"`
	Limit      int    `form:"limit"`
}

type AuditStats struct {
	TotalLogs    int            `json:"total_logs"`
	ActionCounts map[string]int `json:"action_counts"`
	EntityCounts map[string]int `json:"entity_counts"`
}
