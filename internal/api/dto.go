package api

import (
	"time"

	"github.com/starford/raido/internal/history"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/organizer"
)

// RuleRequest is the request body for creating or updating a rule.
// Enabled defaults to true when omitted.
type RuleRequest struct {
	Tag         *string `json:"tag,omitempty"`
	FileType    *string `json:"file_type,omitempty"`
	NamePattern *string `json:"name_pattern,omitempty"`
	Folder      string  `json:"folder"`
	Enabled     *bool   `json:"enabled,omitempty"`
}

// Rule converts the request into the domain type.
func (r RuleRequest) Rule() models.Rule {
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}
	return models.Rule{
		Tag:         r.Tag,
		FileType:    r.FileType,
		NamePattern: r.NamePattern,
		Folder:      r.Folder,
		Enabled:     enabled,
	}
}

// ReorderRequest moves the rule at From to index To.
type ReorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// EnabledRequest toggles a rule.
type EnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// ExclusionsRequest replaces the excluded folder list.
type ExclusionsRequest struct {
	ExcludedFolders []string `json:"excluded_folders"`
}

// RuleListResponse wraps the ordered rule list; array position is priority.
type RuleListResponse struct {
	Rules []models.Rule `json:"rules"`
}

// ExclusionsResponse wraps the excluded folder list.
type ExclusionsResponse struct {
	ExcludedFolders []string `json:"excluded_folders"`
}

// StatusResponse summarizes the organizer's current configuration and
// the time of its most recent run (omitted when none has happened).
type StatusResponse struct {
	RuleCount      int        `json:"rule_count"`
	EnabledCount   int        `json:"enabled_count"`
	ExclusionCount int        `json:"exclusion_count"`
	LastRunAt      *time.Time `json:"last_run_at,omitempty"`
}

// RunListResponse wraps the run history.
type RunListResponse struct {
	Runs []history.RunRow `json:"runs"`
}

// RunMovesResponse wraps the moves of one recorded run.
type RunMovesResponse struct {
	Moves []history.MoveRow `json:"moves"`
}

// RunResult is the response of a manual organization run (aliased from the
// domain layer).
type RunResult = organizer.RunResult

// Plan is the dry-run preview response (aliased from the domain layer).
type Plan = organizer.Plan
