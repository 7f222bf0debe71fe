package upload

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/brandkit/pkg/pg"
)

// Record is one row in the uploads table: the durable metadata of a stored,
// validated file.
type Record struct {
	ID        string
	Filename  string
	Path      string
	Size      int64
	MIMEType  string
	Checksum  string
	Warnings  []string
	CreatedAt time.Time
}

// Repository persists upload metadata in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps a pgx pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts an upload record. A unique index on checksum surfaces
// duplicate content as ErrDuplicateUpload.
func (r *Repository) Create(ctx context.Context, rec Record) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO uploads (id, filename, path, size_bytes, mime_type, checksum, warnings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.Filename, rec.Path, rec.Size, rec.MIMEType, rec.Checksum, rec.Warnings, rec.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return errors.Join(ErrDuplicateUpload, err)
		}
		return errors.Join(ErrRecordFailed, err)
	}
	return nil
}

// GetByChecksum looks up a stored upload by content hash.
func (r *Repository) GetByChecksum(ctx context.Context, checksum string) (*Record, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, filename, path, size_bytes, mime_type, checksum, warnings, created_at
		FROM uploads WHERE checksum = $1`,
		checksum,
	)

	var rec Record
	err := row.Scan(&rec.ID, &rec.Filename, &rec.Path, &rec.Size, &rec.MIMEType, &rec.Checksum, &rec.Warnings, &rec.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, err
		}
		return nil, errors.Join(ErrRecordFailed, err)
	}
	return &rec, nil
}

// Delete removes an upload record by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM uploads WHERE id = $1`, id); err != nil {
		return errors.Join(ErrRecordFailed, err)
	}
	return nil
}
