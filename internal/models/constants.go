package models

// Transaction directions
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Candidate field limits
const (
	// MaxCandidateTextLength is the hard cap on a candidate's narration text.
	MaxCandidateTextLength = 200
	// MaxEmailSubjectLength is the hard cap on an email-derived description.
	MaxEmailSubjectLength = 100
)

// Alert levels produced by the insights heuristics
const (
	AlertLevelPositive = "POSITIVE"
	AlertLevelLow      = "LOW"
	AlertLevelHigh     = "HIGH"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
