package repository

import (
	"context"

	"farm-policy/internal/database"
	"farm-policy/internal/domain/document"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]document.UserDocument, error)
	Create(ctx context.Context, d document.UserDocument) (document.UserDocument, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (document.UserDocument, error)
}

type PostgresDocumentRepository struct {
	db database.DB
}

func NewPostgresDocumentRepository(db database.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{db: db}
}

const documentColumns = `id, user_id, doc_name, doc_type, file_path, file_size, mime_type, created_at, updated_at`

func (r *PostgresDocumentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]document.UserDocument, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+documentColumns+` FROM user_documents WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]document.UserDocument, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDocumentRepository) Create(ctx context.Context, d document.UserDocument) (document.UserDocument, error) {
	return scanDocument(r.db.QueryRow(ctx,
		`INSERT INTO user_documents (user_id, doc_name, doc_type, file_path, file_size, mime_type)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+documentColumns,
		d.UserID, d.DocName, d.DocType, d.FilePath, d.FileSize, d.MimeType,
	))
}

// Delete removes the row and returns it so the caller can drop the stored
// file.
func (r *PostgresDocumentRepository) Delete(ctx context.Context, userID, id uuid.UUID) (document.UserDocument, error) {
	d, err := scanDocument(r.db.QueryRow(ctx,
		`DELETE FROM user_documents WHERE id = $1 AND user_id = $2 RETURNING `+documentColumns,
		id, userID,
	))
	if err != nil {
		if database.IsNoRows(err) {
			return document.UserDocument{}, document.ErrNotFound
		}
		return document.UserDocument{}, err
	}
	return d, nil
}

func scanDocument(row database.Row) (document.UserDocument, error) {
	var d document.UserDocument
	err := row.Scan(&d.ID, &d.UserID, &d.DocName, &d.DocType, &d.FilePath, &d.FileSize, &d.MimeType, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}
