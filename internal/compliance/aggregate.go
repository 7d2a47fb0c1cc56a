package compliance

import (
	"time"

	"mintgate/pkg/domain"
)

// checkResults joins the outputs of the five concurrent checks before
// aggregation.
type checkResults struct {
	Licensing      LicensingResult
	Attribution    AttributionResult
	Disclosure     DisclosureResult
	Asset          AssetResult
	DataProtection DataProtectionResult
}

// aggregate combines the five check results into a verdict. Pure domain
// logic - no I/O, no side effects.
//
// Domains are processed in the fixed order licensing, attribution,
// disclosure, asset, data protection, regardless of which check finished
// first; concurrency upstream is strictly for latency. No domain's warnings
// are suppressed by another domain's blocking issue.
func aggregate(evalTime time.Time, results checkResults) *Verdict {
	verdict := &Verdict{
		Timestamp:      evalTime,
		Licensing:      results.Licensing,
		Attribution:    results.Attribution,
		Disclosure:     results.Disclosure,
		Asset:          results.Asset,
		DataProtection: results.DataProtection,
		Warnings:       []Warning{},
		BlockingIssues: []BlockingIssue{},
	}

	appendLicensingFindings(verdict, results.Licensing)
	// Attribution is pass-through classification; it produces no findings
	// until registry verification exists.
	appendDisclosureFindings(verdict, results.Disclosure)
	appendAssetFindings(verdict, results.Asset)
	appendDataProtectionFindings(verdict, results.DataProtection)

	switch {
	case len(verdict.BlockingIssues) > 0:
		verdict.Status = domain.StatusFailed
	case len(verdict.Warnings) > 0:
		verdict.Status = domain.StatusPassedWithWarnings
	default:
		verdict.Status = domain.StatusPassed
	}

	return verdict
}

func appendLicensingFindings(verdict *Verdict, result LicensingResult) {
	for _, message := range result.Warnings {
		verdict.Warnings = append(verdict.Warnings, Warning{
			Category:       domain.DomainLicensing,
			Message:        message,
			Recommendation: "Review and correct the licensing metadata before minting",
			Severity:       domain.SeverityWarning,
		})
	}

	if result.HasUnlicensedContent {
		verdict.BlockingIssues = append(verdict.BlockingIssues, BlockingIssue{
			Category:    domain.DomainLicensing,
			Title:       "Unlicensed sample content",
			Description: "The content declares sample usage but lists no sample sources, so no rights can be cleared",
			Resolution:  "List every sample source and obtain clearance, or remove the samples",
			Citation:    "Sample clearance obligation under the applicable copyright act",
		})
	}
}

func appendDisclosureFindings(verdict *Verdict, result DisclosureResult) {
	// High risk is always surfaced, even when disclosure blocking already
	// applies.
	if result.RiskLevel == domain.RiskHigh {
		verdict.Warnings = append(verdict.Warnings, Warning{
			Category:       domain.DomainDisclosure,
			Message:        "Content is classified as high risk: predominantly AI generated without human oversight",
			Recommendation: "Add meaningful human oversight to the creation process",
			Severity:       domain.SeverityCritical,
			Reference:      "EU AI Act Art. 50",
		})
	}

	if result.DisclosureRequired && !result.DisclosurePresent {
		verdict.BlockingIssues = append(verdict.BlockingIssues, BlockingIssue{
			Category:    domain.DomainDisclosure,
			Title:       "Missing AI content disclosure",
			Description: "More than 10% of the content is AI generated but no disclosure accompanies it",
			Resolution:  "Attach an AI content disclosure to the asset metadata",
			Citation:    "EU AI Act Art. 50",
		})
	}
}

func appendAssetFindings(verdict *Verdict, result AssetResult) {
	// Whitepaper obligations stay advisory pending legal confirmation, so
	// this is a warning rather than a blocking issue.
	if result.WhitepaperRequired && !result.WhitepaperProvided {
		verdict.Warnings = append(verdict.Warnings, Warning{
			Category:       domain.DomainCryptoAsset,
			Message:        "Series size reaches the threshold where a crypto asset whitepaper is required, but none was provided",
			Recommendation: "Prepare and attach a whitepaper before offering the series",
			Severity:       domain.SeverityWarning,
			Reference:      "MiCA Art. 6",
		})
	}
}

func appendDataProtectionFindings(verdict *Verdict, result DataProtectionResult) {
	// The one hard legal gate the engine enforces unconditionally.
	if result.BiometricUsed && !result.ConsentObtained {
		verdict.BlockingIssues = append(verdict.BlockingIssues, BlockingIssue{
			Category:    domain.DomainDataProtection,
			Title:       "Missing consent for biometric data",
			Description: "The content embeds biometric data but the subject holds no valid consent for its use",
			Resolution:  "Obtain explicit consent from the subject before minting",
			Citation:    "GDPR Art. 9(2)(a)",
		})
	}
}
