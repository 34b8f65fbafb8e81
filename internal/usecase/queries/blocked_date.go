package queries

import (
	"context"
	"time"
)

type BlockedDateQueries interface {
	List(ctx context.Context, from, to time.Time) ([]*BlockedDateView, error)
}

type BlockedDateViewRepo interface {
	FindInRange(ctx context.Context, from, to time.Time) ([]*BlockedDateView, error)
}

type blockedDateQueriesImpl struct {
	repo BlockedDateViewRepo
}

func NewBlockedDateQueries(repo BlockedDateViewRepo) BlockedDateQueries {
	return &blockedDateQueriesImpl{repo: repo}
}

func (q *blockedDateQueriesImpl) List(ctx context.Context, from, to time.Time) ([]*BlockedDateView, error) {
	return q.repo.FindInRange(ctx, from, to)
}
