package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mintgate/pkg/domain"
)

func cleanResults() checkResults {
	return checkResults{
		Licensing:      LicensingResult{ISRCValid: true, WorkNumberValid: true},
		Attribution:    AttributionResult{},
		Disclosure:     DisclosureResult{RiskLevel: domain.RiskMinimal, TransparencyMet: true},
		Asset:          AssetResult{NFTExempt: true},
		DataProtection: DataProtectionResult{},
	}
}

func TestAggregateStatusInvariants(t *testing.T) {
	now := time.Now()

	t.Run("clean results pass", func(t *testing.T) {
		verdict := aggregate(now, cleanResults())

		assert.Equal(t, domain.StatusPassed, verdict.Status)
		assert.Empty(t, verdict.Warnings)
		assert.Empty(t, verdict.BlockingIssues)
		assert.True(t, verdict.CanProceed())
		assert.Equal(t, now, verdict.Timestamp)
	})

	t.Run("warnings without blockers pass with warnings", func(t *testing.T) {
		results := cleanResults()
		results.Licensing.Warnings = []string{"ISRC format is invalid"}

		verdict := aggregate(now, results)

		assert.Equal(t, domain.StatusPassedWithWarnings, verdict.Status)
		assert.NotEmpty(t, verdict.Warnings)
		assert.Empty(t, verdict.BlockingIssues)
		assert.True(t, verdict.CanProceed())
	})

	t.Run("any blocking issue fails", func(t *testing.T) {
		results := cleanResults()
		results.DataProtection.BiometricUsed = true

		verdict := aggregate(now, results)

		assert.Equal(t, domain.StatusFailed, verdict.Status)
		assert.NotEmpty(t, verdict.BlockingIssues)
		assert.False(t, verdict.CanProceed())
	})
}

func TestAggregateLicensing(t *testing.T) {
	t.Run("string warnings become licensing warnings in order", func(t *testing.T) {
		results := cleanResults()
		results.Licensing.Warnings = []string{"first", "second"}

		verdict := aggregate(time.Now(), results)

		require.Len(t, verdict.Warnings, 2)
		assert.Equal(t, domain.DomainLicensing, verdict.Warnings[0].Category)
		assert.Equal(t, "first", verdict.Warnings[0].Message)
		assert.Equal(t, "second", verdict.Warnings[1].Message)
		assert.Equal(t, domain.SeverityWarning, verdict.Warnings[0].Severity)
	})

	t.Run("unlicensed content blocks", func(t *testing.T) {
		results := cleanResults()
		results.Licensing.HasUnlicensedContent = true

		verdict := aggregate(time.Now(), results)

		require.Len(t, verdict.BlockingIssues, 1)
		assert.Equal(t, domain.DomainLicensing, verdict.BlockingIssues[0].Category)
	})
}

func TestAggregateDisclosure(t *testing.T) {
	t.Run("missing required disclosure blocks", func(t *testing.T) {
		results := cleanResults()
		results.Disclosure.DisclosureRequired = true
		results.Disclosure.DisclosurePresent = false

		verdict := aggregate(time.Now(), results)

		require.Len(t, verdict.BlockingIssues, 1)
		assert.Equal(t, domain.DomainDisclosure, verdict.BlockingIssues[0].Category)
	})

	t.Run("high risk adds a critical warning even while blocked", func(t *testing.T) {
		results := cleanResults()
		results.Disclosure.RiskLevel = domain.RiskHigh
		results.Disclosure.DisclosureRequired = true

		verdict := aggregate(time.Now(), results)

		require.Len(t, verdict.Warnings, 1)
		assert.Equal(t, domain.SeverityCritical, verdict.Warnings[0].Severity)
		require.Len(t, verdict.BlockingIssues, 1)
	})

	t.Run("present disclosure satisfies the obligation", func(t *testing.T) {
		results := cleanResults()
		results.Disclosure.DisclosureRequired = true
		results.Disclosure.DisclosurePresent = true

		verdict := aggregate(time.Now(), results)
		assert.Empty(t, verdict.BlockingIssues)
	})
}

func TestAggregateAsset(t *testing.T) {
	t.Run("missing whitepaper warns but never blocks", func(t *testing.T) {
		results := cleanResults()
		results.Asset.WhitepaperRequired = true
		results.Asset.WhitepaperProvided = false

		verdict := aggregate(time.Now(), results)

		assert.Equal(t, domain.StatusPassedWithWarnings, verdict.Status)
		require.Len(t, verdict.Warnings, 1)
		assert.Equal(t, domain.DomainCryptoAsset, verdict.Warnings[0].Category)
		assert.Empty(t, verdict.BlockingIssues)
		assert.True(t, verdict.CanProceed())
	})
}

func TestAggregateDataProtection(t *testing.T) {
	t.Run("biometric use without consent blocks unconditionally", func(t *testing.T) {
		results := cleanResults()
		results.DataProtection.BiometricUsed = true
		results.DataProtection.ConsentObtained = false

		verdict := aggregate(time.Now(), results)

		require.Len(t, verdict.BlockingIssues, 1)
		assert.Equal(t, domain.DomainDataProtection, verdict.BlockingIssues[0].Category)
		assert.Contains(t, verdict.BlockingIssues[0].Citation, "GDPR")
	})

	t.Run("biometric use with consent is clean", func(t *testing.T) {
		results := cleanResults()
		results.DataProtection.BiometricUsed = true
		results.DataProtection.ConsentObtained = true

		verdict := aggregate(time.Now(), results)
		assert.Empty(t, verdict.BlockingIssues)
	})
}

func TestAggregateDomainOrdering(t *testing.T) {
	// Findings must appear in canonical domain order no matter which check
	// produced them first upstream.
	results := cleanResults()
	results.Licensing.HasUnlicensedContent = true
	results.Disclosure.DisclosureRequired = true
	results.DataProtection.BiometricUsed = true

	verdict := aggregate(time.Now(), results)

	require.Len(t, verdict.BlockingIssues, 3)
	assert.Equal(t, domain.DomainLicensing, verdict.BlockingIssues[0].Category)
	assert.Equal(t, domain.DomainDisclosure, verdict.BlockingIssues[1].Category)
	assert.Equal(t, domain.DomainDataProtection, verdict.BlockingIssues[2].Category)

	rank := make(map[domain.ComplianceDomain]int, len(domain.Domains))
	for i, d := range domain.Domains {
		rank[d] = i
	}
	for i := 1; i < len(verdict.BlockingIssues); i++ {
		assert.Less(t, rank[verdict.BlockingIssues[i-1].Category], rank[verdict.BlockingIssues[i].Category])
	}
}
