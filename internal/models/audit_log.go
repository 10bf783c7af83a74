package models

// AuditLog is one recorded mutation of the ledger or asset register. Entries
// are emitted to the structured log rather than stored.
type AuditLog struct {
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   int64          `json:"resource_id,omitempty"`
	Changes      map[string]any `json:"changes,omitempty"`
}

// Fields flattens the entry into alternating key/value pairs.
func (a AuditLog) Fields() []any {
	fields := []any{
		"action", a.Action,
		"resource_type", a.ResourceType,
	}
	if a.ResourceID != 0 {
		fields = append(fields, "resource_id", a.ResourceID)
	}
	for k, v := range a.Changes {
		fields = append(fields, k, v)
	}
	return fields
}
