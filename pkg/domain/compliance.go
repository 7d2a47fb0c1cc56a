package domain

import dErrors "mintgate/pkg/domain-errors"

// ComplianceStatus is the overall outcome of one compliance evaluation.
type ComplianceStatus string

const (
	StatusPassed             ComplianceStatus = "passed"
	StatusPassedWithWarnings ComplianceStatus = "passed_with_warnings"
	StatusFailed             ComplianceStatus = "failed"
)

func (s ComplianceStatus) String() string {
	return string(s)
}

// ComplianceDomain names one of the five regulatory areas the engine checks.
type ComplianceDomain string

const (
	DomainLicensing      ComplianceDomain = "music_licensing"
	DomainAttribution    ComplianceDomain = "text_attribution"
	DomainDisclosure     ComplianceDomain = "ai_disclosure"
	DomainCryptoAsset    ComplianceDomain = "crypto_asset"
	DomainDataProtection ComplianceDomain = "data_protection"
)

// Domains lists all compliance domains in their canonical aggregation order.
// The aggregator depends on this order being stable.
var Domains = []ComplianceDomain{
	DomainLicensing,
	DomainAttribution,
	DomainDisclosure,
	DomainCryptoAsset,
	DomainDataProtection,
}

func (d ComplianceDomain) String() string {
	return string(d)
}

// Severity ranks how urgently a warning should be addressed.
// Order: info < warning < critical.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

func (s Severity) String() string {
	return string(s)
}

// RiskLevel classifies AI content under the transparency rules.
// Order: minimal < limited < high < unacceptable.
//
// RiskUnacceptable is part of the model for forward extension but is not
// produced by the current classification thresholds.
type RiskLevel string

const (
	RiskMinimal      RiskLevel = "minimal"
	RiskLimited      RiskLevel = "limited"
	RiskHigh         RiskLevel = "high"
	RiskUnacceptable RiskLevel = "unacceptable"
)

func (r RiskLevel) String() string {
	return string(r)
}

var validRiskLevels = map[RiskLevel]bool{
	RiskMinimal:      true,
	RiskLimited:      true,
	RiskHigh:         true,
	RiskUnacceptable: true,
}

// ParseRiskLevel constructs a RiskLevel from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseRiskLevel(s string) (RiskLevel, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "risk level cannot be empty")
	}
	r := RiskLevel(s)
	if !validRiskLevels[r] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid risk level: "+s)
	}
	return r, nil
}
