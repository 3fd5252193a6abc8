// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel)
// - prospect.go: Outreach funnel model (Prospect)
// - campaign.go: Email campaign model (Campaign)
// - invoice.go: Billing model (Invoice)
// - client.go: Client and project models (Client, Project)
// - staff.go: Staff and credential models (Staff, AuthUser)
// - activity.go: Audit trail model (ActivityLog)
// - settings.go: Workspace settings model (Settings)
package models
