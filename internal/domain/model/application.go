package model

// Package model holds persistence-facing domain records.

import "time"

// Application is a founder's application to a startup program.
type Application struct {
	ID        string    `json:"id"`
	ProgramID string    `json:"program_id"`
	FounderID string    `json:"founder_id"`
	Company   string    `json:"company"`
	Pitch     string    `json:"pitch"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
