package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"laser-compare/internal/laser"
)

// SubmissionStatus is the review state of a user submission.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Submission is a machine proposed by a visitor, waiting for review.
type Submission struct {
	ID string `json:"id"`
	EquipmentInput
	SubmitterEmail string           `json:"submitter_email,omitempty"`
	Status         SubmissionStatus `json:"status"`
	ReviewNote     string           `json:"review_note,omitempty"`
	EquipmentID    string           `json:"equipment_id,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	ReviewedAt     *time.Time       `json:"reviewed_at,omitempty"`
}

// SubmissionInput is the public submission form.
type SubmissionInput struct {
	EquipmentInput
	SubmitterEmail string `json:"submitter_email,omitempty"`
}

const submissionColumns = `id, brand, model, laser_type, power_kw, max_thickness_mm,
	bed_width_mm, bed_length_mm, price, description, submitter_email, status,
	review_note, equipment_id, created_at, reviewed_at`

func scanSubmission(row scanner) (Submission, error) {
	var (
		s           Submission
		laserType   string
		status      string
		price       sql.NullFloat64
		equipmentID sql.NullString
		createdAt   string
		reviewedAt  sql.NullString
	)
	err := row.Scan(&s.ID, &s.Brand, &s.Model, &laserType, &s.PowerKw, &s.MaxThicknessMm,
		&s.BedWidthMm, &s.BedLengthMm, &price, &s.Description, &s.SubmitterEmail, &status,
		&s.ReviewNote, &equipmentID, &createdAt, &reviewedAt)
	if err != nil {
		return Submission{}, err
	}

	s.LaserType = laser.LaserType(laserType)
	s.Status = SubmissionStatus(status)
	s.EquipmentID = equipmentID.String
	if price.Valid {
		p := price.Float64
		s.Price = &p
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return Submission{}, err
	}
	if reviewedAt.Valid {
		t, err := parseTime(reviewedAt.String)
		if err != nil {
			return Submission{}, err
		}
		s.ReviewedAt = &t
	}
	return s, nil
}

// Submit validates and stores a pending submission.
func (s *Store) Submit(ctx context.Context, in SubmissionInput) (Submission, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return Submission{}, err
	}
	in.SubmitterEmail = strings.TrimSpace(in.SubmitterEmail)
	if in.SubmitterEmail != "" {
		if _, err := mail.ParseAddress(in.SubmitterEmail); err != nil {
			return Submission{}, &FieldError{"submitter_email", "is not a valid address"}
		}
	}

	sub := Submission{
		ID:             uuid.NewString(),
		EquipmentInput: in.EquipmentInput,
		SubmitterEmail: in.SubmitterEmail,
		Status:         StatusPending,
		CreatedAt:      s.now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO submissions (id, brand, model, laser_type,
			power_kw, max_thickness_mm, bed_width_mm, bed_length_mm, price, description,
			submitter_email, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Brand, sub.Model, string(sub.LaserType), sub.PowerKw, sub.MaxThicknessMm,
		sub.BedWidthMm, sub.BedLengthMm, nullablePrice(sub.Price), sub.Description,
		sub.SubmitterEmail, string(sub.Status), formatTime(sub.CreatedAt))
	if err != nil {
		return Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	return sub, nil
}

// Submissions lists submissions oldest first. An empty status lists all.
func (s *Store) Submissions(ctx context.Context, status SubmissionStatus) ([]Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions`
	var args []any
	if status != "" {
		if !status.Valid() {
			return nil, &FieldError{"status", fmt.Sprintf("unsupported value %q", status)}
		}
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	subs := []Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return subs, nil
}

func getSubmission(ctx context.Context, q queryer, id string) (Submission, error) {
	row := q.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Submission{}, fmt.Errorf("get submission %s: %w", id, err)
	}
	return sub, nil
}

// Approve publishes a pending submission as a catalog entry.
func (s *Store) Approve(ctx context.Context, id, note string) (Submission, error) {
	var sub Submission
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if sub, err = pendingSubmission(ctx, tx, id); err != nil {
			return err
		}

		e, err := s.insert(ctx, tx, sub.EquipmentInput)
		if err != nil {
			return err
		}
		return s.review(ctx, tx, &sub, StatusApproved, note, e.ID)
	})
	if err != nil {
		return Submission{}, err
	}
	return sub, nil
}

// Reject closes a pending submission without publishing it.
func (s *Store) Reject(ctx context.Context, id, note string) (Submission, error) {
	var sub Submission
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if sub, err = pendingSubmission(ctx, tx, id); err != nil {
			return err
		}
		return s.review(ctx, tx, &sub, StatusRejected, note, "")
	})
	if err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func pendingSubmission(ctx context.Context, tx *sql.Tx, id string) (Submission, error) {
	sub, err := getSubmission(ctx, tx, id)
	if err != nil {
		return Submission{}, err
	}
	if sub.Status != StatusPending {
		return Submission{}, fmt.Errorf("submission %s is already %s: %w", id, sub.Status, ErrConflict)
	}
	return sub, nil
}

func (s *Store) review(ctx context.Context, tx *sql.Tx, sub *Submission, status SubmissionStatus, note, equipmentID string) error {
	now := s.now().UTC()
	var eqID sql.NullString
	if equipmentID != "" {
		eqID = sql.NullString{String: equipmentID, Valid: true}
	}

	_, err := tx.ExecContext(ctx, `UPDATE submissions
		SET status = ?, review_note = ?, equipment_id = ?, reviewed_at = ?
		WHERE id = ?`,
		string(status), strings.TrimSpace(note), eqID, formatTime(now), sub.ID)
	if err != nil {
		return fmt.Errorf("review submission %s: %w", sub.ID, err)
	}

	sub.Status = status
	sub.ReviewNote = strings.TrimSpace(note)
	sub.EquipmentID = equipmentID
	sub.ReviewedAt = &now
	return nil
}
