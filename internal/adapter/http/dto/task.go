package dto

import (
	"encoding/json"

	"tasktime/internal/core/domain"
)

type TaskItem struct {
	PublicID        string         `json:"public_id"`
	Description     string         `json:"description"`
	ClientName      string         `json:"client_name"`
	ClientPublicID  *string        `json:"client_public_id,omitempty"`
	InvoiceNumber   *string        `json:"invoice_number,omitempty"`
	InvoicePublicID *string        `json:"invoice_public_id,omitempty"`
	Balance         *float64       `json:"balance,omitempty"`
	Status          string         `json:"status"`
	IsRunning       bool           `json:"is_running"`
	TimeLog         domain.TimeLog `json:"time_log"`
	Duration        int64          `json:"duration"`
	IsDeleted       bool           `json:"is_deleted"`
	DeletedAt       *string        `json:"deleted_at,omitempty"`
	CreatedAt       string         `json:"created_at"`
}

type TaskDetail struct {
	PublicID    string         `json:"public_id"`
	Description string         `json:"description"`
	IsRunning   bool           `json:"is_running"`
	TimeLog     domain.TimeLog `json:"time_log"`
	Duration    int64          `json:"duration"`
	IsDeleted   bool           `json:"is_deleted"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// SaveTaskRequest accepts time_log either as the serialized JSON string or as an inline array.
type SaveTaskRequest struct {
	Client      *string         `json:"client"`
	Description *string         `json:"description" binding:"omitempty,max=65535"`
	TimeLog     json.RawMessage `json:"time_log"`
	Action      *string         `json:"action" binding:"omitempty,oneof=start resume stop"`
}
