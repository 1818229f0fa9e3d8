package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Flv72S/Eterna-Home-sub001/internal/document/models"
	id "github.com/Flv72S/Eterna-Home-sub001/pkg/domain"
)

// PostgresStore persists document metadata in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed document store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, doc *models.Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, house_id, name, mime_type, path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		doc.ID, int64(doc.HouseID), doc.Name, doc.MimeType, doc.Path,
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByHouse(ctx context.Context, houseID id.HouseID) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, house_id, name, mime_type, path, created_at, updated_at
		FROM documents WHERE house_id = $1
		ORDER BY created_at DESC`,
		int64(houseID),
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		var (
			d   models.Document
			hid int64
			uid uuid.UUID
		)
		if err := rows.Scan(&uid, &hid, &d.Name, &d.MimeType, &d.Path, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.ID = uid
		d.HouseID = id.HouseID(hid)
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}
