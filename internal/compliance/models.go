// Package compliance implements the regulatory decision engine that gates
// minting of tokenized creative content. Five independent checks (music
// licensing, text attribution, AI disclosure, crypto asset classification,
// data protection) run concurrently over pre-extracted facts; their results
// aggregate deterministically into a single verdict.
package compliance

import (
	"time"

	"mintgate/pkg/domain"
)

// ContentInfo carries the music licensing facts about a piece of content.
type ContentInfo struct {
	HasISRC         bool     `json:"has_isrc"`
	ISRC            string   `json:"isrc,omitempty"`
	HasWorkNumber   bool     `json:"has_work_number"`
	WorkNumber      string   `json:"work_number,omitempty"`
	ContainsSamples bool     `json:"contains_samples"`
	SampleSources   []string `json:"sample_sources,omitempty"`
	HasLyrics       bool     `json:"has_lyrics"`
	WordCount       int      `json:"word_count"`
}

// AIContentInfo carries the AI provenance facts.
type AIContentInfo struct {
	ContainsAIContent bool     `json:"contains_ai_content"`
	AIPercentage      float64  `json:"ai_percentage"`
	Technologies      []string `json:"technologies,omitempty"`
	HumanOversight    bool     `json:"human_oversight"`
	DisclosurePresent bool     `json:"disclosure_present"`
}

// AssetInfo carries the planned tokenized-asset packaging facts.
type AssetInfo struct {
	IsPartOfSeries   bool   `json:"is_part_of_series"`
	SeriesSize       int    `json:"series_size"`
	IsFractionalized bool   `json:"is_fractionalized"`
	HasWhitepaper    bool   `json:"has_whitepaper"`
	TargetNetwork    string `json:"target_network,omitempty"`
}

// BiometricInfo carries the personal-data facts about embedded biometrics.
type BiometricInfo struct {
	UsesBiometricData bool                  `json:"uses_biometric_data"`
	DataCategories    []domain.DataCategory `json:"data_categories,omitempty"`
	Subject           string                `json:"subject"`
	StorageLocation   string                `json:"storage_location,omitempty"`
}

// LicensedSample models the outcome of a rights lookup for one declared
// sample source. The actual clearance happens outside this engine; the record
// is synthesized with a placeholder license pending that lookup.
type LicensedSample struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"`
	LicenseType string     `json:"license_type"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// LicensingResult is produced by the music licensing check.
type LicensingResult struct {
	ISRCValid            bool             `json:"isrc_valid"`
	WorkNumberValid      bool             `json:"work_number_valid"`
	HasUnlicensedContent bool             `json:"has_unlicensed_content"`
	LicensedSamples      []LicensedSample `json:"licensed_samples,omitempty"`
	Warnings             []string         `json:"warnings,omitempty"`
}

// AttributionResult is produced by the text attribution check. Registration
// and pixel integration report the state of an external registry that this
// engine does not consult; both stay false until that collaborator exists.
type AttributionResult struct {
	HasText         bool `json:"has_text"`
	Registered      bool `json:"registered"`
	PixelIntegrated bool `json:"pixel_integrated"`
	WordCount       int  `json:"word_count"`
}

// DisclosureResult is produced by the AI disclosure check.
type DisclosureResult struct {
	ContentDetected    bool             `json:"content_detected"`
	AIPercentage       float64          `json:"ai_percentage"`
	DisclosureRequired bool             `json:"disclosure_required"`
	DisclosurePresent  bool             `json:"disclosure_present"`
	RiskLevel          domain.RiskLevel `json:"risk_level"`
	TransparencyMet    bool             `json:"transparency_met"`
}

// AssetResult is produced by the crypto asset classification check.
// ServiceProvider classification is external; it is always reported false.
type AssetResult struct {
	NFTExempt          bool `json:"nft_exempt"`
	Fractionalized     bool `json:"fractionalized"`
	PartOfSeries       bool `json:"part_of_series"`
	SeriesSize         *int `json:"series_size,omitempty"`
	WhitepaperRequired bool `json:"whitepaper_required"`
	WhitepaperProvided bool `json:"whitepaper_provided"`
	ServiceProvider    bool `json:"service_provider"`
}

// DataProtectionResult is produced by the data protection check. The
// minimization/erasure/portability flags describe capabilities implemented
// elsewhere in the platform and are asserted statically here.
type DataProtectionResult struct {
	BiometricUsed        bool                `json:"biometric_used"`
	ConsentObtained      bool                `json:"consent_obtained"`
	ConsentTimestamp     *time.Time          `json:"consent_timestamp,omitempty"`
	DataMinimization     bool                `json:"data_minimization"`
	ErasureSupported     bool                `json:"erasure_supported"`
	PortabilitySupported bool                `json:"portability_supported"`
	LawfulBasis          *domain.LawfulBasis `json:"lawful_basis,omitempty"`
}

// Warning is a non-blocking advisory finding. Generated fresh per evaluation,
// never persisted.
type Warning struct {
	Category       domain.ComplianceDomain `json:"category"`
	Message        string                  `json:"message"`
	Recommendation string                  `json:"recommendation"`
	Severity       domain.Severity         `json:"severity"`
	Reference      string                  `json:"reference,omitempty"`
}

// BlockingIssue is a finding that must prevent the gated downstream action.
type BlockingIssue struct {
	Category    domain.ComplianceDomain `json:"category"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Resolution  string                  `json:"resolution"`
	Citation    string                  `json:"citation,omitempty"`
}

// Verdict is the aggregated outcome of one evaluation. Immutable; the engine
// retains only the most recent one as observable state.
type Verdict struct {
	Timestamp      time.Time               `json:"timestamp"`
	Status         domain.ComplianceStatus `json:"status"`
	Licensing      LicensingResult         `json:"licensing"`
	Attribution    AttributionResult       `json:"attribution"`
	Disclosure     DisclosureResult        `json:"disclosure"`
	Asset          AssetResult             `json:"asset"`
	DataProtection DataProtectionResult    `json:"data_protection"`
	Warnings       []Warning               `json:"warnings"`
	BlockingIssues []BlockingIssue         `json:"blocking_issues"`
}

// CanProceed reports whether the gated action (minting) may go ahead.
// True iff no blocking issues were found.
func (v *Verdict) CanProceed() bool {
	return len(v.BlockingIssues) == 0
}
