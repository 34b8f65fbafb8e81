package queries

import (
	"context"
	"time"

	"reservas-backend/internal/domain/member"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/usecase/shared"
)

// MemberValidationView answers the front-desk check "can this RUT book
// member-priced hours this week".
type MemberValidationView struct {
	Valid          bool        `json:"valid"`
	Member         *MemberView `json:"member,omitempty"`
	RemainingHours int         `json:"remaining_hours"`
	Reason         string      `json:"reason,omitempty"`
}

type MemberQueries interface {
	List(ctx context.Context) ([]*MemberView, error)
	ValidateByRUT(ctx context.Context, rut string, forDate time.Time) (*MemberValidationView, error)
}

type MemberViewRepo interface {
	FindAll(ctx context.Context) ([]*MemberView, error)
}

type memberQueriesImpl struct {
	repo  MemberViewRepo
	reads shared.CommandReads
}

func NewMemberQueries(repo MemberViewRepo, reads shared.CommandReads) MemberQueries {
	return &memberQueriesImpl{repo: repo, reads: reads}
}

func (q *memberQueriesImpl) List(ctx context.Context) ([]*MemberView, error) {
	return q.repo.FindAll(ctx)
}

func (q *memberQueriesImpl) ValidateByRUT(ctx context.Context, rut string, forDate time.Time) (*MemberValidationView, error) {
	snap, err := q.reads.MemberByRUT(ctx, rut)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &MemberValidationView{Reason: "member not found"}, nil
		}
		return nil, err
	}
	if !snap.Active {
		return &MemberValidationView{Reason: "member is not active"}, nil
	}

	weekStart, weekEnd := member.WeekBounds(forDate)
	booked, err := q.reads.MemberBookedHours(ctx, snap.ID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	remaining := member.MaxWeeklyHours - booked
	if remaining < 0 {
		remaining = 0
	}

	view := &MemberView{
		ID:       snap.ID,
		RUT:      snap.RUT,
		FullName: snap.FullName,
		Email:    snap.Email,
		Active:   snap.Active,
	}
	if remaining == 0 {
		return &MemberValidationView{Member: view, Reason: "weekly hour quota exhausted"}, nil
	}
	return &MemberValidationView{Valid: true, Member: view, RemainingHours: remaining}, nil
}
