package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"laser-compare/internal/db"
	"laser-compare/internal/laser"
	"laser-compare/internal/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, migrations.Up(ctx, database, zap.NewNop()))

	s := NewStore(database)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func ptr[T any](v T) *T { return &v }

func machine(brand, model string, powerKw float64, price *float64) EquipmentInput {
	return EquipmentInput{
		Brand:          brand,
		Model:          model,
		LaserType:      laser.Fiber,
		PowerKw:        powerKw,
		MaxThicknessMm: powerKw * 4,
		BedWidthMm:     1500,
		BedLengthMm:    3000,
		Price:          price,
	}
}

func seed(t *testing.T, s *Store, inputs ...EquipmentInput) []Equipment {
	t.Helper()
	out := make([]Equipment, 0, len(inputs))
	for _, in := range inputs {
		e, err := s.Create(context.Background(), in)
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := machine("  Raycus ", "RFL-C3000", 3, ptr(120000.0))
	in.LaserType = " FIBER "
	created, err := s.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Raycus", created.Brand)
	assert.Equal(t, laser.Fiber, created.LaserType)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.EquipmentInput, got.EquipmentInput)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
	require.NotNil(t, got.Price)
	assert.Equal(t, 120000.0, *got.Price)
}

func TestCreateRejectsInvalidAndDuplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bad := machine("Raycus", "X", 75, nil)
	_, err := s.Create(ctx, bad)
	require.ErrorIs(t, err, ErrInvalid)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "power_kw", fe.Field)

	seed(t, s, machine("Raycus", "X", 3, nil))
	_, err = s.Create(ctx, machine("Raycus", "X", 6, nil))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e := seed(t, s, machine("Han's", "G3015", 3, nil))[0]

	in := e.EquipmentInput
	in.PowerKw = 6
	in.Price = ptr(250000.0)
	updated, err := s.Update(ctx, e.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 6.0, updated.PowerKw)
	assert.True(t, updated.UpdatedAt.After(e.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(e.CreatedAt))

	_, err = s.Update(ctx, "missing", in)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, e.ID))
	assert.ErrorIs(t, s.Delete(ctx, e.ID), ErrNotFound)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListFiltersAndSorts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	co2 := machine("Trotec", "Speedy 400", 0.12, ptr(30000.0))
	co2.LaserType = laser.CO2
	seed(t, s,
		machine("Raycus", "C3000", 3, ptr(120000.0)),
		machine("Bodor", "P3015", 12, nil),
		machine("HSG", "GS6", 6, ptr(180000.0)),
		co2,
	)

	page, err := s.List(ctx, ListFilter{Sort: "power_kw", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, []string{"Trotec", "Raycus", "HSG", "Bodor"}, brands(page.Items))

	page, err = s.List(ctx, ListFilter{LaserType: laser.Fiber, MinPower: 5, Sort: "power_kw", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bodor", "HSG"}, brands(page.Items))

	page, err = s.List(ctx, ListFilter{Sort: "price", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"HSG", "Raycus", "Trotec", "Bodor"}, brands(page.Items), "unpriced rows sort last")

	page, err = s.List(ctx, ListFilter{MaxPrice: 150000, Sort: "price"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Trotec", "Raycus"}, brands(page.Items))

	page, err = s.List(ctx, ListFilter{Query: "gs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"HSG"}, brands(page.Items))

	page, err = s.List(ctx, ListFilter{Sort: "created_at", Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, []string{"Bodor", "HSG"}, brands(page.Items))
}

func TestListEscapesLikeWildcards(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, machine("Raycus", "C3000", 3, nil))

	page, err := s.List(context.Background(), ListFilter{Query: "%"})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.NotNil(t, page.Items)
}

func brands(items []Equipment) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.Brand
	}
	return out
}
