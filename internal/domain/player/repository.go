package player

import "context"

// ListFilter narrows an owner-scoped listing. LeagueID matches the team's current league, not the
// player's denormalized copy.
type ListFilter struct {
	LeagueID string
}

// Repository is the owner-scoped player store. Every method is bound to ownerUserID except Create,
// which takes it from the player record.
type Repository interface {
	ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]Player, error)
	GetByOwner(ctx context.Context, ownerUserID, playerID string) (Player, bool, error)
	Create(ctx context.Context, p Player) error
	// Update writes every mutable field of p in one statement, matching on ID and OwnerUserID.
	Update(ctx context.Context, p Player) (bool, error)
	Delete(ctx context.Context, ownerUserID, playerID string) (bool, error)
}

// ScoreboardReader is the unscoped read path used by public aggregate views only.
type ScoreboardReader interface {
	ListAll(ctx context.Context) ([]Player, error)
}
