package models

import "time"

// Run is the persisted record of one scan, kept so the chat interface can
// find the most recent findings without rescanning.
type Run struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RunID         string    `gorm:"size:36;uniqueIndex" json:"runId"`
	Target        string    `gorm:"size:1024;not null" json:"target"`
	Timestamp     string    `gorm:"size:32;not null" json:"timestamp"`
	Branch        string    `gorm:"size:255" json:"branch,omitempty"`
	Commit        string    `gorm:"size:64" json:"commit,omitempty"`
	Provider      string    `gorm:"size:64" json:"provider"`
	ModelID       string    `gorm:"size:255" json:"modelId"`
	FindingsPath  string    `gorm:"size:1024" json:"findingsPath"`
	GuidePath     string    `gorm:"size:1024" json:"guidePath"`
	SummariesPath string    `gorm:"size:1024" json:"summariesPath"`
	Files         int       `json:"files"`
	Directories   int       `json:"directories"`
	Unreadable    int       `json:"unreadable"`
	Unavailable   int       `json:"unavailable"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
