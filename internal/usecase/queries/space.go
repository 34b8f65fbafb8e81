package queries

import "context"

type SpaceQueries interface {
	ListActive(ctx context.Context) ([]*SpaceView, error)
}

type SpaceViewRepo interface {
	FindActive(ctx context.Context) ([]*SpaceView, error)
}

type spaceQueriesImpl struct {
	repo SpaceViewRepo
}

func NewSpaceQueries(repo SpaceViewRepo) SpaceQueries {
	return &spaceQueriesImpl{repo: repo}
}

func (q *spaceQueriesImpl) ListActive(ctx context.Context) ([]*SpaceView, error) {
	return q.repo.FindActive(ctx)
}
