package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"laser-compare/internal/laser"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// sortColumns whitelists the columns a listing may be ordered by.
var sortColumns = map[string]string{
	"power_kw":   "power_kw",
	"price":      "price",
	"brand":      "brand COLLATE NOCASE",
	"created_at": "created_at",
}

// ListFilter narrows and orders an equipment listing. Zero values mean
// "no constraint".
type ListFilter struct {
	LaserType laser.LaserType
	Brand     string
	MinPower  float64
	MaxPower  float64
	MaxPrice  float64
	Query     string
	Sort      string
	Desc      bool
	Limit     int
	Offset    int
}

// ParseListFilter reads a ListFilter from query parameters. Errors match
// ErrInvalid.
func ParseListFilter(q url.Values) (ListFilter, error) {
	f := ListFilter{
		LaserType: laser.LaserType(strings.ToLower(q.Get("laser_type"))),
		Brand:     strings.TrimSpace(q.Get("brand")),
		Query:     strings.TrimSpace(q.Get("q")),
		Sort:      q.Get("sort"),
		Limit:     defaultLimit,
	}

	if f.LaserType != "" && !f.LaserType.Valid() {
		return ListFilter{}, &FieldError{"laser_type", fmt.Sprintf("unsupported value %q", f.LaserType)}
	}

	if f.Sort == "" {
		f.Sort = "created_at"
		f.Desc = true
	}
	if _, ok := sortColumns[f.Sort]; !ok {
		return ListFilter{}, &FieldError{"sort", fmt.Sprintf("cannot sort by %q", f.Sort)}
	}

	switch strings.ToLower(q.Get("order")) {
	case "":
	case "asc":
		f.Desc = false
	case "desc":
		f.Desc = true
	default:
		return ListFilter{}, &FieldError{"order", "must be asc or desc"}
	}

	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"min_power", &f.MinPower},
		{"max_power", &f.MaxPower},
		{"max_price", &f.MaxPrice},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return ListFilter{}, &FieldError{p.name, "must be a non-negative number"}
		}
		*p.dst = v
	}

	for _, p := range []struct {
		name string
		dst  *int
		max  int
	}{
		{"limit", &f.Limit, maxLimit},
		{"offset", &f.Offset, -1},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return ListFilter{}, &FieldError{p.name, "must be a non-negative integer"}
		}
		if p.max > 0 && v > p.max {
			v = p.max
		}
		*p.dst = v
	}
	if f.Limit == 0 {
		f.Limit = defaultLimit
	}

	return f, nil
}

// where builds the SQL WHERE clause and its arguments.
func (f ListFilter) where() (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.LaserType != "" {
		conds = append(conds, "laser_type = ?")
		args = append(args, string(f.LaserType))
	}
	if f.Brand != "" {
		conds = append(conds, "brand = ? COLLATE NOCASE")
		args = append(args, f.Brand)
	}
	if f.MinPower > 0 {
		conds = append(conds, "power_kw >= ?")
		args = append(args, f.MinPower)
	}
	if f.MaxPower > 0 {
		conds = append(conds, "power_kw <= ?")
		args = append(args, f.MaxPower)
	}
	if f.MaxPrice > 0 {
		conds = append(conds, "price IS NOT NULL AND price <= ?")
		args = append(args, f.MaxPrice)
	}
	if f.Query != "" {
		conds = append(conds, "(brand LIKE ? ESCAPE '\\' OR model LIKE ? ESCAPE '\\')")
		like := "%" + escapeLike(f.Query) + "%"
		args = append(args, like, like)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderBy renders the ORDER BY clause. Unpriced rows sort last whichever
// direction is requested; id breaks ties so pages are stable.
func (f ListFilter) orderBy() string {
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}
	col, ok := sortColumns[f.Sort]
	if !ok {
		col = sortColumns["created_at"]
	}
	if f.Sort == "price" {
		return fmt.Sprintf(" ORDER BY price IS NULL, %s %s, id", col, dir)
	}
	return fmt.Sprintf(" ORDER BY %s %s, id", col, dir)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
