package domain

import dErrors "mintgate/pkg/domain-errors"

// ConsentType classifies what a subject has agreed to. The set is closed:
// downstream storage and disclosure flows key retention rules off it.
type ConsentType string

const (
	ConsentTypeNFTMetadata        ConsentType = "nft_metadata_storage"
	ConsentTypePublicLedger       ConsentType = "public_ledger_storage"
	ConsentTypeAnonymizedResearch ConsentType = "anonymized_research"
	ConsentTypeThirdPartySharing  ConsentType = "third_party_sharing"
)

var validConsentTypes = map[ConsentType]bool{
	ConsentTypeNFTMetadata:        true,
	ConsentTypePublicLedger:       true,
	ConsentTypeAnonymizedResearch: true,
	ConsentTypeThirdPartySharing:  true,
}

// ParseConsentType constructs a ConsentType from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseConsentType(s string) (ConsentType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "consent type cannot be empty")
	}
	t := ConsentType(s)
	if !validConsentTypes[t] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid consent type: "+s)
	}
	return t, nil
}

func (t ConsentType) IsValid() bool {
	return validConsentTypes[t]
}

func (t ConsentType) String() string {
	return string(t)
}

// ConsentPurpose is a domain value that identifies why data is processed.
// Purpose binding allows selective revocation without affecting other flows.
//
// Usage: construct via ParseConsentPurpose at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type ConsentPurpose string

const (
	// ConsentPurposeCreation covers processing biometric signals while a
	// piece of content is being created. The data protection check queries
	// this purpose before an asset may be minted.
	ConsentPurposeCreation ConsentPurpose = "content_creation"

	ConsentPurposeMinting  ConsentPurpose = "asset_minting"
	ConsentPurposeResearch ConsentPurpose = "research"
	ConsentPurposeSharing  ConsentPurpose = "sharing"
)

// validConsentPurposes is the single source of truth for valid consent purposes.
var validConsentPurposes = map[ConsentPurpose]bool{
	ConsentPurposeCreation: true,
	ConsentPurposeMinting:  true,
	ConsentPurposeResearch: true,
	ConsentPurposeSharing:  true,
}

// ParseConsentPurpose constructs a ConsentPurpose from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported; no
// other errors are expected.
func ParseConsentPurpose(s string) (ConsentPurpose, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "purpose cannot be empty")
	}
	p := ConsentPurpose(s)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid purpose: "+s)
	}
	return p, nil
}

// IsValid checks if the consent purpose is one of the supported enum values.
func (p ConsentPurpose) IsValid() bool {
	return validConsentPurposes[p]
}

func (p ConsentPurpose) String() string {
	return string(p)
}

// DataCategory names a biometric signal class covered by a consent record.
type DataCategory string

const (
	DataCategoryHeartRate     DataCategory = "heart_rate"
	DataCategoryHRV           DataCategory = "hrv"
	DataCategoryCoherence     DataCategory = "coherence"
	DataCategoryBreathingRate DataCategory = "breathing_rate"
	DataCategoryEEG           DataCategory = "eeg"
	DataCategoryMovement      DataCategory = "movement"
)

var validDataCategories = map[DataCategory]bool{
	DataCategoryHeartRate:     true,
	DataCategoryHRV:           true,
	DataCategoryCoherence:     true,
	DataCategoryBreathingRate: true,
	DataCategoryEEG:           true,
	DataCategoryMovement:      true,
}

// ParseDataCategory constructs a DataCategory from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseDataCategory(s string) (DataCategory, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "data category cannot be empty")
	}
	c := DataCategory(s)
	if !validDataCategories[c] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid data category: "+s)
	}
	return c, nil
}

func (c DataCategory) IsValid() bool {
	return validDataCategories[c]
}

func (c DataCategory) String() string {
	return string(c)
}

// LawfulBasis names the GDPR processing basis reported for biometric data.
// Only consent is produced by the engine today; the type is kept open for
// future bases (contract, legitimate interest).
type LawfulBasis string

const (
	LawfulBasisConsent LawfulBasis = "consent"
)

func (b LawfulBasis) String() string {
	return string(b)
}
