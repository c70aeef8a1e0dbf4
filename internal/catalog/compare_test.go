package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ParseIDs(" a, b,,a ,c"))
	assert.Empty(t, ParseIDs(""))
}

func TestCompareHighlights(t *testing.T) {
	s := newTestStore(t)

	small := machine("Raycus", "C3000", 3, ptr(120000.0))
	small.BedWidthMm, small.BedLengthMm = 2000, 4000
	big := machine("Bodor", "P3015", 12, nil)
	big.MaxThicknessMm = 60
	mid := machine("HSG", "GS6", 6, ptr(180000.0))
	items := seed(t, s, small, big, mid)

	cmp, err := s.Compare(context.Background(), []string{items[2].ID, items[0].ID, items[1].ID})
	require.NoError(t, err)

	require.Len(t, cmp.Items, 3)
	assert.Equal(t, "HSG", cmp.Items[0].Brand, "items keep the requested order")
	assert.Equal(t, map[string]string{
		HighlightPower:     items[1].ID,
		HighlightPrice:     items[0].ID,
		HighlightBedArea:   items[0].ID,
		HighlightThickness: items[1].ID,
	}, cmp.Highlights)
}

func TestCompareOmitsPriceWhenNothingIsPriced(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, machine("A", "1", 3, nil), machine("B", "2", 4, nil))

	cmp, err := s.Compare(context.Background(), []string{items[0].ID, items[1].ID})
	require.NoError(t, err)
	assert.NotContains(t, cmp.Highlights, HighlightPrice)
	assert.Equal(t, items[1].ID, cmp.Highlights[HighlightPower])
}

func TestCompareRejectsBadSelections(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, machine("A", "1", 3, nil), machine("B", "2", 4, nil))
	ctx := context.Background()

	_, err := s.Compare(ctx, []string{items[0].ID})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = s.Compare(ctx, []string{"a", "b", "c", "d", "e"})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = s.Compare(ctx, []string{items[0].ID, "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}
