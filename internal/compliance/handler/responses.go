package handler

import (
	"time"

	"mintgate/internal/compliance"
)

// VerdictResponse is the HTTP representation of a verdict. CanProceed is
// derived so clients never re-implement the blocking-issue rule, and Checking
// reports whether a newer evaluation is already in flight.
type VerdictResponse struct {
	Timestamp      time.Time                       `json:"timestamp"`
	Status         string                          `json:"status"`
	CanProceed     bool                            `json:"can_proceed"`
	Checking       bool                            `json:"checking"`
	Licensing      compliance.LicensingResult      `json:"licensing"`
	Attribution    compliance.AttributionResult    `json:"attribution"`
	Disclosure     compliance.DisclosureResult     `json:"disclosure"`
	Asset          compliance.AssetResult          `json:"asset"`
	DataProtection compliance.DataProtectionResult `json:"data_protection"`
	Warnings       []compliance.Warning            `json:"warnings"`
	BlockingIssues []compliance.BlockingIssue      `json:"blocking_issues"`
}

// WarningsResponse is the HTTP response for GET /compliance/warnings.
type WarningsResponse struct {
	Warnings []compliance.Warning `json:"warnings"`
}

// FromVerdict converts an engine verdict to an HTTP response.
func FromVerdict(v *compliance.Verdict) *VerdictResponse {
	return &VerdictResponse{
		Timestamp:      v.Timestamp,
		Status:         v.Status.String(),
		CanProceed:     v.CanProceed(),
		Licensing:      v.Licensing,
		Attribution:    v.Attribution,
		Disclosure:     v.Disclosure,
		Asset:          v.Asset,
		DataProtection: v.DataProtection,
		Warnings:       v.Warnings,
		BlockingIssues: v.BlockingIssues,
	}
}
