package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"farm-policy/internal/database"
	"farm-policy/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) (application.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (application.Application, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status application.Status) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationSelect = `SELECT a.id, a.user_id, a.policy_id, a.form_data, a.status, a.created_at, a.updated_at,
	COALESCE(p.title, ''), COALESCE(p.department, '')
FROM applications a
LEFT JOIN policies p ON p.id = a.policy_id`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	data, err := encodeFormData(a.FormData)
	if err != nil {
		return application.Application{}, err
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx,
		`INSERT INTO applications (user_id, policy_id, form_data, status)
		 VALUES ($1, $2, $3::jsonb, $4)
		 RETURNING id`,
		a.UserID, a.PolicyID, data, string(a.Status),
	).Scan(&id); err != nil {
		return application.Application{}, err
	}
	return r.GetByID(ctx, a.UserID, id)
}

// ListByUser returns the user's applications newest first with the policy
// title and department attached.
func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, applicationSelect+"\nWHERE a.user_id = $1\nORDER BY a.created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, applicationSelect+"\nWHERE a.id = $1 AND a.user_id = $2", id, userID))
	if err != nil {
		if database.IsNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status application.Status) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = now() WHERE id = $2 AND user_id = $3`,
		string(status), id, userID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var (
		a      application.Application
		data   []byte
		status string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.PolicyID, &data, &status, &a.CreatedAt, &a.UpdatedAt, &a.PolicyTitle, &a.PolicyDepartment); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	a.FormData = application.FormData{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &a.FormData); err != nil {
			return application.Application{}, fmt.Errorf("decode form data: %w", err)
		}
	}
	return a, nil
}

func encodeFormData(d application.FormData) (string, error) {
	if d == nil {
		d = application.FormData{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
