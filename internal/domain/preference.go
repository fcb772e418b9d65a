package domain

import "context"

// Preference is the set of categories a user is interested in.
// swagger:model Preference
type Preference struct {
	UserID     int64       `json:"-"`
	Categories []*Category `json:"categories"`
}

// PreferenceRepository stores one preference record per user.
type PreferenceRepository interface {
	// GetOrCreate returns the user's record, inserting an empty one if missing.
	GetOrCreate(ctx context.Context, userID int64) (*Preference, error)
	// ReplaceCategories sets the user's category set to exactly categoryIDs.
	ReplaceCategories(ctx context.Context, userID int64, categoryIDs []int64) error
}

// PreferenceService manages the caller's own preferences.
type PreferenceService interface {
	Get(ctx context.Context, userID int64) (*Preference, error)
	SetCategories(ctx context.Context, userID int64, categoryIDs []int64) (*Preference, error)
	ClearCategories(ctx context.Context, userID int64) (*Preference, error)
}
