package models

import (
	"time"

	"github.com/google/uuid"
)

// BuildSummary describes the resolved graph currently being served.
type BuildSummary struct {
	RunID    uuid.UUID      `json:"run_id"`
	BuiltAt  time.Time      `json:"built_at"`
	Duration string         `json:"duration"`
	Files    []string       `json:"files"`
	Counts   map[string]int `json:"counts"`
}
