package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"laser-compare/internal/laser"
)

// Store persists the catalog in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Page is one window of a filtered listing. Total counts every match.
type Page struct {
	Items  []Equipment `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

const equipmentColumns = `id, brand, model, laser_type, power_kw, max_thickness_mm,
	bed_width_mm, bed_length_mm, price, description, created_at, updated_at`

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEquipment(row scanner) (Equipment, error) {
	var (
		e                    Equipment
		laserType            string
		price                sql.NullFloat64
		createdAt, updatedAt string
	)
	err := row.Scan(&e.ID, &e.Brand, &e.Model, &laserType, &e.PowerKw, &e.MaxThicknessMm,
		&e.BedWidthMm, &e.BedLengthMm, &price, &e.Description, &createdAt, &updatedAt)
	if err != nil {
		return Equipment{}, err
	}

	e.LaserType = laser.LaserType(laserType)
	if price.Valid {
		p := price.Float64
		e.Price = &p
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return Equipment{}, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return Equipment{}, err
	}
	return e, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func nullablePrice(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// List returns the page of equipment matching f.
func (s *Store) List(ctx context.Context, f ListFilter) (Page, error) {
	where, args := f.where()

	page := Page{Items: []Equipment{}, Limit: f.Limit, Offset: f.Offset}
	if page.Limit <= 0 {
		page.Limit = defaultLimit
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM equipment`+where, args...).Scan(&page.Total); err != nil {
		return Page{}, fmt.Errorf("count equipment: %w", err)
	}

	query := `SELECT ` + equipmentColumns + ` FROM equipment` + where + f.orderBy() + ` LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return Page{}, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return Page{}, fmt.Errorf("scan equipment: %w", err)
		}
		page.Items = append(page.Items, e)
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("iterate equipment: %w", err)
	}

	return page, nil
}

// Get returns the equipment with the given id.
func (s *Store) Get(ctx context.Context, id string) (Equipment, error) {
	return getEquipment(ctx, s.db, id)
}

func getEquipment(ctx context.Context, q queryer, id string) (Equipment, error) {
	row := q.QueryRowContext(ctx, `SELECT `+equipmentColumns+` FROM equipment WHERE id = ?`, id)
	e, err := scanEquipment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Equipment{}, fmt.Errorf("equipment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Equipment{}, fmt.Errorf("get equipment %s: %w", id, err)
	}
	return e, nil
}

// Create validates in and inserts it. A duplicate brand+model is ErrConflict.
func (s *Store) Create(ctx context.Context, in EquipmentInput) (Equipment, error) {
	return s.insert(ctx, s.db, in)
}

func (s *Store) insert(ctx context.Context, q queryer, in EquipmentInput) (Equipment, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return Equipment{}, err
	}

	now := s.now().UTC()
	e := Equipment{
		ID:             uuid.NewString(),
		EquipmentInput: in,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := q.ExecContext(ctx, `INSERT INTO equipment (`+equipmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Brand, e.Model, string(e.LaserType), e.PowerKw, e.MaxThicknessMm,
		e.BedWidthMm, e.BedLengthMm, nullablePrice(e.Price), e.Description,
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	if isUniqueViolation(err) {
		return Equipment{}, fmt.Errorf("%s %s already exists: %w", e.Brand, e.Model, ErrConflict)
	}
	if err != nil {
		return Equipment{}, fmt.Errorf("insert equipment: %w", err)
	}
	return e, nil
}

// Update replaces the editable fields of an existing machine.
func (s *Store) Update(ctx context.Context, id string, in EquipmentInput) (Equipment, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return Equipment{}, err
	}

	res, err := s.db.ExecContext(ctx, `UPDATE equipment SET
			brand = ?, model = ?, laser_type = ?, power_kw = ?, max_thickness_mm = ?,
			bed_width_mm = ?, bed_length_mm = ?, price = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		in.Brand, in.Model, string(in.LaserType), in.PowerKw, in.MaxThicknessMm,
		in.BedWidthMm, in.BedLengthMm, nullablePrice(in.Price), in.Description,
		formatTime(s.now()), id)
	if isUniqueViolation(err) {
		return Equipment{}, fmt.Errorf("%s %s already exists: %w", in.Brand, in.Model, ErrConflict)
	}
	if err != nil {
		return Equipment{}, fmt.Errorf("update equipment %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Equipment{}, fmt.Errorf("equipment %s: %w", id, ErrNotFound)
	}
	return s.Get(ctx, id)
}

// Delete removes a machine.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete equipment %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("equipment %s: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of machines in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM equipment`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count equipment: %w", err)
	}
	return n, nil
}

// withTx runs fn in a transaction, committing when fn returns nil.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
