package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aidosk/devfolio-api/internal/entity"
)

type BriefRepository struct {
	DB *sql.DB
}

func NewBriefRepository(db *sql.DB) *BriefRepository {
	return &BriefRepository{DB: db}
}

func (r *BriefRepository) Create(ctx context.Context, b *entity.Brief) error {
	payload, err := json.Marshal(b.Submission)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	query := `
		INSERT INTO briefs (id, contact_name, contact_email, attachment_url, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.DB.ExecContext(
		ctx,
		query,
		b.ID,
		b.Submission.Contact.ContactName,
		b.Submission.Contact.ContactEmail,
		nullString(b.AttachmentURL),
		payload,
		b.CreatedAt,
	)
	return err
}

func (r *BriefRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM briefs WHERE id = $1`, id)
	return err
}

func (r *BriefRepository) FindByID(ctx context.Context, id string) (*entity.Brief, error) {
	query := `
		SELECT id, attachment_url, payload, created_at, synced_at
		FROM briefs
		WHERE id = $1
	`
	return scanBrief(r.DB.QueryRowContext(ctx, query, id))
}

func (r *BriefRepository) List(ctx context.Context, limit, offset int) ([]*entity.Brief, error) {
	query := `
		SELECT id, attachment_url, payload, created_at, synced_at
		FROM briefs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var briefs []*entity.Brief
	for rows.Next() {
		b, err := scanBrief(rows)
		if err != nil {
			return nil, err
		}
		briefs = append(briefs, b)
	}
	return briefs, rows.Err()
}

func (r *BriefRepository) MarkSynced(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE briefs SET synced_at = NOW() WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBrief(row rowScanner) (*entity.Brief, error) {
	var (
		b          entity.Brief
		attachment sql.NullString
		payload    []byte
	)
	if err := row.Scan(&b.ID, &attachment, &payload, &b.CreatedAt, &b.SyncedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &b.Submission); err != nil {
		return nil, fmt.Errorf("unmarshal submission: %w", err)
	}
	b.AttachmentURL = attachment.String
	return &b, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
