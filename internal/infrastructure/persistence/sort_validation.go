package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProspectSortFields contains allowed sort fields for prospects
var ProspectSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"email":         true,
	"company":       true,
	"country":       true,
	"niche":         true,
	"status":        true,
	"source":        true,
	"date_added":    true,
	"last_activity": true,
}

// CampaignSortFields contains allowed sort fields for campaigns
var CampaignSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
	"sent_count": true,
	"open_count": true,
	"sent_at":    true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"number":         true,
	"client_name":    true,
	"issue_date":     true,
	"due_date":       true,
	"total":          true,
	"amount_paid":    true,
	"status":         true,
	"payment_status": true,
	"paid_date":      true,
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"company":    true,
	"status":     true,
}

// ProjectSortFields contains allowed sort fields for projects
var ProjectSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"client_name":    true,
	"amount":         true,
	"start_date":     true,
	"cycle":          true,
	"next_renewal":   true,
	"renewal_status": true,
	"active":         true,
}

// StaffSortFields contains allowed sort fields for staff
var StaffSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"name":              true,
	"email":             true,
	"role":              true,
	"status":            true,
	"total_leads_added": true,
}

// ActivityLogSortFields contains allowed sort fields for activity log entries
var ActivityLogSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"staff_name":  true,
	"action":      true,
	"target_type": true,
}
