package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"car_rental/internal/model"
	"car_rental/internal/utils"

	"github.com/jackc/pgx/v5"
)

// DocumentRepository defines operations for customer_documents
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	FindByID(ctx context.Context, id string) (*model.Document, error)
	List(ctx context.Context, filters model.DocumentFilters, p utils.Pagination) ([]model.Document, int, error)
	Verify(ctx context.Context, id, verifiedBy string, isVerified bool, notes *string) (*model.Document, error)
}

type documentRepository struct {
	db DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db DB) DocumentRepository {
	return &documentRepository{db: db}
}

const documentColumns = `id, user_id, document_type, document_name, document_url, expiry_date::text, is_verified,
    verified_by, verified_at, notes, created_at`

func scanDocument(row pgx.Row, d *model.Document) error {
	return row.Scan(&d.ID, &d.UserID, &d.DocumentType, &d.DocumentName, &d.DocumentURL, &d.ExpiryDate,
		&d.IsVerified, &d.VerifiedBy, &d.VerifiedAt, &d.Notes, &d.CreatedAt)
}

// Create inserts a new document
func (r *documentRepository) Create(ctx context.Context, d *model.Document) error {
	sql := `INSERT INTO customer_documents (id, user_id, document_type, document_name, document_url, expiry_date,
                is_verified, created_at)
            VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8)`
	_, err := r.db.Exec(ctx, sql, d.ID, d.UserID, d.DocumentType, d.DocumentName, d.DocumentURL, d.ExpiryDate,
		d.IsVerified, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// FindByID retrieves a document by its ID; nil, nil when absent
func (r *documentRepository) FindByID(ctx context.Context, id string) (*model.Document, error) {
	d := &model.Document{}
	sql := `SELECT ` + documentColumns + ` FROM customer_documents WHERE id = $1`
	if err := scanDocument(r.db.QueryRow(ctx, sql, id), d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find document by ID: %w", err)
	}
	return d, nil
}

// List returns one page of documents matching filters
func (r *documentRepository) List(ctx context.Context, filters model.DocumentFilters, p utils.Pagination) ([]model.Document, int, error) {
	var conds conditions
	if filters.UserID != nil {
		conds.add("user_id = $%d", *filters.UserID)
	}
	if filters.DocumentType != nil && *filters.DocumentType != "" {
		conds.add("document_type = $%d", *filters.DocumentType)
	}
	if filters.Verified != nil {
		conds.add("is_verified = $%d", *filters.Verified)
	}

	total, err := conds.count(ctx, r.db, "FROM customer_documents")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	limit, args := conds.page(p.Limit, p.Offset())
	sql := `SELECT ` + documentColumns + ` FROM customer_documents` + conds.where() + ` ORDER BY created_at DESC` + limit
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var d model.Document
		if err := scanDocument(rows, &d); err != nil {
			return nil, 0, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating document rows: %w", err)
	}
	return docs, total, nil
}

// Verify records an admin's verification decision
func (r *documentRepository) Verify(ctx context.Context, id, verifiedBy string, isVerified bool, notes *string) (*model.Document, error) {
	sql := `UPDATE customer_documents
            SET is_verified = $1, verified_by = $2, verified_at = $3, notes = COALESCE($4, notes)
            WHERE id = $5 RETURNING ` + documentColumns
	d := &model.Document{}
	err := scanDocument(r.db.QueryRow(ctx, sql, isVerified, verifiedBy, time.Now(), notes, id), d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to verify document: %w", err)
	}
	return d, nil
}
