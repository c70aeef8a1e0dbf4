package catalog

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"laser-compare/internal/laser"
)

// Format is a bulk import encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

const xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FormatFromContentType maps a request Content-Type to an import format.
func FormatFromContentType(contentType string) (Format, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	switch mediaType {
	case "text/csv", "application/csv":
		return FormatCSV, true
	case "application/json":
		return FormatJSON, true
	case xlsxMediaType:
		return FormatXLSX, true
	}
	return "", false
}

// ImportRow is one parsed record. Line is 1-based and counts the header.
type ImportRow struct {
	Line  int
	Input EquipmentInput
}

// RowError explains why a record was skipped.
type RowError struct {
	Line    int    `json:"line"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Inserted int        `json:"inserted"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors"`
}

// headerAliases maps each column to the header spellings accepted for it.
var headerAliases = map[string][]string{
	"brand":            {"brand", "manufacturer", "make", "vendor"},
	"model":            {"model", "model name", "name"},
	"laser_type":       {"laser_type", "laser type", "type", "source"},
	"power_kw":         {"power_kw", "power", "power (kw)", "kw"},
	"max_thickness_mm": {"max_thickness_mm", "max thickness", "max thickness (mm)", "thickness"},
	"bed_width_mm":     {"bed_width_mm", "bed width", "width", "width (mm)"},
	"bed_length_mm":    {"bed_length_mm", "bed length", "length", "length (mm)"},
	"price":            {"price", "cost", "price (cny)"},
	"description":      {"description", "desc", "notes"},
}

var requiredColumns = []string{"brand", "model", "laser_type", "power_kw", "bed_width_mm", "bed_length_mm"}

// detectColumns maps canonical column names to their index in the header.
func detectColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int)
	for i, cell := range header {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for col, aliases := range headerAliases {
			if _, taken := cols[col]; taken {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					cols[col] = i
					break
				}
			}
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := cols[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &FieldError{"header", "missing columns: " + strings.Join(missing, ", ")}
	}
	return cols, nil
}

// ParseImport decodes r in the given format. Records that cannot be read
// are returned as row errors; a malformed file is an error matching
// ErrInvalid.
func ParseImport(format Format, r io.Reader) ([]ImportRow, []RowError, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read import body: %w", err)
	}

	switch format {
	case FormatJSON:
		return parseJSON(bytes.NewReader(data))
	case FormatCSV:
		cr := csv.NewReader(bytes.NewReader(data))
		cr.Comma = detectDelimiter(data)
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		records, err := cr.ReadAll()
		if err != nil {
			return nil, nil, &FieldError{"body", "malformed csv: " + err.Error()}
		}
		return parseTable(records)
	case FormatXLSX:
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, nil, &FieldError{"body", "malformed xlsx: " + err.Error()}
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, &FieldError{"body", "workbook has no sheets"}
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
		}
		return parseTable(rows)
	}
	return nil, nil, &FieldError{"format", fmt.Sprintf("unsupported value %q", format)}
}

func parseJSON(r io.Reader) ([]ImportRow, []RowError, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, &FieldError{"body", "expected a JSON array of equipment"}
	}

	var (
		rows []ImportRow
		errs []RowError
	)
	for i, msg := range raw {
		var in EquipmentInput
		if err := json.Unmarshal(msg, &in); err != nil {
			errs = append(errs, RowError{Line: i + 1, Message: "malformed record"})
			continue
		}
		rows = append(rows, ImportRow{Line: i + 1, Input: in})
	}
	return rows, errs, nil
}

// detectDelimiter picks the separator that splits the header into the most
// columns.
func detectDelimiter(data []byte) rune {
	header, _, _ := bytes.Cut(data, []byte("\n"))
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := bytes.Count(header, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func parseTable(records [][]string) ([]ImportRow, []RowError, error) {
	if len(records) == 0 {
		return nil, nil, &FieldError{"body", "file is empty"}
	}
	cols, err := detectColumns(records[0])
	if err != nil {
		return nil, nil, err
	}

	var (
		rows []ImportRow
		errs []RowError
	)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if isEmptyRecord(record) {
			continue
		}
		in, err := parseRecord(record, cols)
		if err != nil {
			errs = append(errs, rowError(i+1, err))
			continue
		}
		rows = append(rows, ImportRow{Line: i + 1, Input: in})
	}
	return rows, errs, nil
}

func parseRecord(record []string, cols map[string]int) (EquipmentInput, error) {
	cell := func(col string) string {
		i, ok := cols[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	in := EquipmentInput{
		Brand:       cell("brand"),
		Model:       cell("model"),
		LaserType:   laser.LaserType(cell("laser_type")),
		Description: cell("description"),
	}

	for _, f := range []struct {
		col      string
		dst      *float64
		optional bool
	}{
		{"power_kw", &in.PowerKw, false},
		{"max_thickness_mm", &in.MaxThicknessMm, true},
		{"bed_width_mm", &in.BedWidthMm, false},
		{"bed_length_mm", &in.BedLengthMm, false},
	} {
		v, ok, err := parseNumber(f.col, cell(f.col))
		if err != nil {
			return EquipmentInput{}, err
		}
		if !ok && !f.optional {
			return EquipmentInput{}, &FieldError{f.col, "is required"}
		}
		*f.dst = v
	}

	price, ok, err := parseNumber("price", cell("price"))
	if err != nil {
		return EquipmentInput{}, err
	}
	if ok {
		in.Price = &price
	}
	return in, nil
}

// parseNumber reads a finite number; ok is false for an empty cell.
func parseNumber(col, s string) (float64, bool, error) {
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, &FieldError{col, fmt.Sprintf("%q is not a number", s)}
	}
	return v, true, nil
}

func isEmptyRecord(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func rowError(line int, err error) RowError {
	var fe *FieldError
	if errors.As(err, &fe) {
		return RowError{Line: line, Field: fe.Field, Message: fe.Message}
	}
	return RowError{Line: line, Message: err.Error()}
}

// Import validates rows and inserts the valid ones in a single transaction.
// Invalid rows and duplicates are reported and skipped; any other failure
// rolls the whole import back.
func (s *Store) Import(ctx context.Context, rows []ImportRow, parseErrs []RowError) (ImportResult, error) {
	res := ImportResult{Errors: append([]RowError{}, parseErrs...)}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, row := range rows {
			_, err := s.insert(ctx, tx, row.Input)
			switch {
			case errors.Is(err, ErrInvalid):
				res.Errors = append(res.Errors, rowError(row.Line, err))
			case errors.Is(err, ErrConflict):
				res.Errors = append(res.Errors, RowError{Line: row.Line, Message: "duplicate brand and model"})
			case err != nil:
				return fmt.Errorf("import line %d: %w", row.Line, err)
			default:
				res.Inserted++
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	slices.SortStableFunc(res.Errors, func(a, b RowError) int { return a.Line - b.Line })
	res.Skipped = len(res.Errors)
	return res, nil
}
