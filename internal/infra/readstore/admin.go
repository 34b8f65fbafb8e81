package readstore

import (
	"context"
	"strings"

	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/pgconv"
	"reservas-backend/internal/usecase/queries"
)

type AdminReadStore struct {
	db db.DBTX
}

func NewAdminReadStore(dbtx db.DBTX) *AdminReadStore {
	return &AdminReadStore{db: dbtx}
}

func (r *AdminReadStore) FindByEmail(ctx context.Context, email string) (*queries.AdminAccountView, error) {
	var acc queries.AdminAccountView
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, role, active
		 FROM admins
		 WHERE lower(email) = $1`,
		strings.ToLower(strings.TrimSpace(email))).Scan(
		&acc.ID, &acc.Email, &acc.PasswordHash, &acc.Role, &acc.Active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("admin not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find admin by email", err)
	}
	return &acc, nil
}
