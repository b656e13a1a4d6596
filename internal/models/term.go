package models

// Term is a published terms-of-service revision.
type Term struct {
	ID            int64  `json:"id"`
	Version       string `json:"version"`
	Content       string `json:"content"`
	EffectiveDate string `json:"effectiveDate"`
}

// TermRequest is the create/update payload for a terms revision.
type TermRequest struct {
	Version       string `json:"version"`
	Content       string `json:"content"`
	EffectiveDate string `json:"effectiveDate"`
}

// TermsInteraction records a user accepting or declining the current terms.
type TermsInteraction struct {
	UserID   int64 `json:"userId"`
	Accepted bool  `json:"accepted"`
}
