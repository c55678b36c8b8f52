package models

import "time"

// ValidationResult holds the outcome of the external rule check for a formation
//
// Errors block publication; warnings are advisory.
type ValidationResult struct {
	Errors    []string  `json:"errors"`
	Warnings  []string  `json:"warnings"`
	CheckedAt time.Time `json:"checkedAt"`
}

// CanPublish reports whether the result allows publication
func (r *ValidationResult) CanPublish() bool {
	return r != nil && len(r.Errors) == 0
}
