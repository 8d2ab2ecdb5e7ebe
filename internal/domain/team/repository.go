package team

import "context"

// ListFilter narrows an owner-scoped listing. Empty fields apply no filter.
type ListFilter struct {
	LeagueID string
}

// Repository describes team persistence needs from use cases.
type Repository interface {
	// GetByID resolves a team regardless of owner.
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]Team, error)
}

// ScoreboardReader is the unscoped read path used by public aggregate views only.
type ScoreboardReader interface {
	ListAll(ctx context.Context) ([]Team, error)
}
