package compliance

import (
	"time"

	"github.com/google/uuid"

	"mintgate/pkg/domain"
)

// The five check functions below are pure domain logic - no I/O, no side
// effects. Each receives the facts for its regulatory area and returns a
// result record; the engine runs them concurrently and may not let one
// observe another's output. The data protection check additionally receives
// the outcome of a consent ledger lookup performed by the engine.

// AI disclosure thresholds. First match wins, top to bottom.
const (
	disclosureThresholdPct  = 10
	limitedRiskThresholdPct = 50
	highRiskThresholdPct    = 90
)

// Crypto asset threshold: series at or above this size lose the NFT exemption
// and trigger the whitepaper obligation.
const whitepaperSeriesThreshold = 10000

// placeholderLicense marks samples whose clearance is pending an external
// rights lookup.
const placeholderLicense = "pending_clearance"

// checkLicensing applies the music licensing rules.
//
// Identifier format problems are advisory: they produce warnings, never
// blocking issues. The one hard licensing gap is declared sample usage with
// no sources listed, which the aggregator turns into a blocking issue.
func checkLicensing(content ContentInfo) LicensingResult {
	result := LicensingResult{
		ISRCValid:       true,
		WorkNumberValid: true,
	}

	if content.HasISRC {
		result.ISRCValid = ValidateISRC(content.ISRC)
		if !result.ISRCValid {
			result.Warnings = append(result.Warnings,
				"ISRC format is invalid; expected CC-XXX-YY-NNNNN")
		}
	}

	if content.HasWorkNumber {
		result.WorkNumberValid = ValidateWorkNumber(content.WorkNumber)
		if !result.WorkNumberValid {
			result.Warnings = append(result.Warnings,
				"work registration number is invalid; expected 7 to 10 digits")
		}
	}

	// Samples declared but no sources listed means nothing can be cleared.
	result.HasUnlicensedContent = content.ContainsSamples && len(content.SampleSources) == 0

	for _, source := range content.SampleSources {
		result.LicensedSamples = append(result.LicensedSamples, LicensedSample{
			ID:          uuid.NewString(),
			Source:      source,
			LicenseType: placeholderLicense,
		})
	}

	if !content.HasISRC && !content.HasWorkNumber {
		result.Warnings = append(result.Warnings,
			"no recording identifier or work registration found; register the work to protect royalties")
	}

	return result
}

// checkAttribution classifies the text facts. Registration and pixel
// integration report an external registry state this engine does not verify.
func checkAttribution(content ContentInfo) AttributionResult {
	return AttributionResult{
		HasText:         content.HasLyrics,
		Registered:      false,
		PixelIntegrated: false,
		WordCount:       content.WordCount,
	}
}

// checkDisclosure applies the AI transparency rules.
//
// Risk thresholds, first match wins:
//   - percentage > 90 and no human oversight: high
//   - percentage > 50: limited
//   - otherwise: minimal
//
// RiskUnacceptable exists in the model but is unreachable under these
// thresholds; whether it should be producible is an open question for the
// domain owner, so no threshold is invented for it here.
func checkDisclosure(ai AIContentInfo) DisclosureResult {
	risk := domain.RiskMinimal
	switch {
	case ai.AIPercentage > highRiskThresholdPct && !ai.HumanOversight:
		risk = domain.RiskHigh
	case ai.AIPercentage > limitedRiskThresholdPct:
		risk = domain.RiskLimited
	}

	required := ai.AIPercentage > disclosureThresholdPct

	return DisclosureResult{
		ContentDetected:    ai.ContainsAIContent,
		AIPercentage:       ai.AIPercentage,
		DisclosureRequired: required,
		DisclosurePresent:  ai.DisclosurePresent,
		RiskLevel:          risk,
		TransparencyMet:    !required || ai.DisclosurePresent,
	}
}

// checkAsset applies the crypto asset classification rules.
//
// Exemption: not fractionalized, and either not part of a series or the
// series stays under the whitepaper threshold. Fractionalizing an asset makes
// it fungible-like and always loses the exemption.
func checkAsset(asset AssetInfo) AssetResult {
	exempt := !asset.IsFractionalized &&
		(!asset.IsPartOfSeries || asset.SeriesSize < whitepaperSeriesThreshold)

	result := AssetResult{
		NFTExempt:          exempt,
		Fractionalized:     asset.IsFractionalized,
		PartOfSeries:       asset.IsPartOfSeries,
		WhitepaperRequired: asset.IsPartOfSeries && asset.SeriesSize >= whitepaperSeriesThreshold,
		WhitepaperProvided: asset.HasWhitepaper,
		ServiceProvider:    false,
	}
	if asset.IsPartOfSeries {
		size := asset.SeriesSize
		result.SeriesSize = &size
	}
	return result
}

// checkDataProtection builds the data protection result from the biometric
// facts and the consent lookup outcome supplied by the engine. Minimization,
// erasure, and portability are platform capabilities asserted statically.
func checkDataProtection(bio BiometricInfo, consented bool, consentAt *time.Time) DataProtectionResult {
	result := DataProtectionResult{
		BiometricUsed:        bio.UsesBiometricData,
		ConsentObtained:      consented,
		ConsentTimestamp:     consentAt,
		DataMinimization:     true,
		ErasureSupported:     true,
		PortabilitySupported: true,
	}
	if consented {
		basis := domain.LawfulBasisConsent
		result.LawfulBasis = &basis
	}
	return result
}
