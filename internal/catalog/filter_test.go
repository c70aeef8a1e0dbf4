package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laser-compare/internal/laser"
)

func TestParseListFilterDefaults(t *testing.T) {
	f, err := ParseListFilter(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, "created_at", f.Sort)
	assert.True(t, f.Desc)
	assert.Equal(t, defaultLimit, f.Limit)
	assert.Zero(t, f.Offset)
}

func TestParseListFilterReadsEveryParameter(t *testing.T) {
	f, err := ParseListFilter(url.Values{
		"laser_type": {"CO2"},
		"brand":      {" Trotec "},
		"min_power":  {"1.5"},
		"max_power":  {"10"},
		"max_price":  {"50000"},
		"q":          {"speedy"},
		"sort":       {"price"},
		"order":      {"asc"},
		"limit":      {"500"},
		"offset":     {"40"},
	})
	require.NoError(t, err)
	assert.Equal(t, ListFilter{
		LaserType: laser.CO2,
		Brand:     "Trotec",
		MinPower:  1.5,
		MaxPower:  10,
		MaxPrice:  50000,
		Query:     "speedy",
		Sort:      "price",
		Limit:     maxLimit,
		Offset:    40,
	}, f)
}

func TestParseListFilterRejects(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		field string
	}{
		{"laser type", url.Values{"laser_type": {"plasma"}}, "laser_type"},
		{"sort column", url.Values{"sort": {"id; DROP TABLE equipment"}}, "sort"},
		{"order", url.Values{"order": {"sideways"}}, "order"},
		{"negative power", url.Values{"min_power": {"-1"}}, "min_power"},
		{"non-numeric price", url.Values{"max_price": {"cheap"}}, "max_price"},
		{"negative offset", url.Values{"offset": {"-5"}}, "offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseListFilter(tt.query)
			require.ErrorIs(t, err, ErrInvalid)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestOrderByKeepsUnpricedLast(t *testing.T) {
	assert.Equal(t, " ORDER BY price IS NULL, price DESC, id", ListFilter{Sort: "price", Desc: true}.orderBy())
	assert.Equal(t, " ORDER BY created_at ASC, id", ListFilter{}.orderBy())
}
