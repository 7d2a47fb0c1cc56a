package handler

import (
	"mintgate/internal/compliance"
	dErrors "mintgate/pkg/domain-errors"
)

// EvaluateRequest is the HTTP request body for POST /compliance/evaluate.
// The four sections mirror the engine inputs; absent sections evaluate as
// their zero values (no samples, no AI content, single asset, no biometrics).
type EvaluateRequest struct {
	Content   compliance.ContentInfo   `json:"content"`
	AI        compliance.AIContentInfo `json:"ai"`
	Asset     compliance.AssetInfo     `json:"asset"`
	Biometric compliance.BiometricInfo `json:"biometric"`
}

// Validate checks the request for values the engine cannot interpret.
func (r *EvaluateRequest) Validate() error {
	if r.AI.AIPercentage < 0 || r.AI.AIPercentage > 100 {
		return dErrors.New(dErrors.CodeInvalidInput, "ai.ai_percentage must be between 0 and 100")
	}
	if r.Asset.SeriesSize < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "asset.series_size cannot be negative")
	}
	if r.Content.WordCount < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "content.word_count cannot be negative")
	}
	for _, c := range r.Biometric.DataCategories {
		if !c.IsValid() {
			return dErrors.New(dErrors.CodeInvalidInput, "invalid biometric data category: "+c.String())
		}
	}
	return nil
}
