package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/healthassist/healthassist/types"
	"go.uber.org/zap"
)

const tableExt = ".csv"

// Header is the first line of every persisted table. Columns are positional.
var Header = []string{
	"name", "gender", "age", "weight", "waist", "neck", "height", "hip",
	"bfp", "group", "calories", "carbs", "protein", "fat", "lifestyle",
}

// Load replaces the store contents with the records of the table at path.
//
// The store is cleared before anything else, so every failure leaves it
// empty. Rows are inserted at the front one by one, which reverses file order.
// In strict mode the first malformed line fails the whole load; in lenient
// mode malformed lines are skipped.
func (s *RecordStore) Load(path string) error {
	s.Clear()

	if !hasTableExt(path) {
		return fmt.Errorf("file %s: %w", path, ErrNotCSV)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrFileAccess, path, err)
	}
	defer f.Close()

	records, err := s.readTable(f)
	if err != nil {
		return err
	}
	for _, rec := range records {
		s.Insert(rec)
	}

	s.logger.Debug("table loaded",
		zap.String("path", path),
		zap.Int("records", len(records)),
		zap.Bool("lenient", s.lenient),
	)
	return nil
}

// Save writes the header and one line per record in traversal order.
func (s *RecordStore) Save(path string) error {
	return s.save(path, s.records)
}

// SaveFileOrder writes the records oldest first, the reverse of Save. A
// later Load restores the current traversal order, so a load, change and
// SaveFileOrder cycle keeps the rows of an existing file where they were.
func (s *RecordStore) SaveFileOrder(path string) error {
	records := slices.Clone(s.records)
	slices.Reverse(records)
	return s.save(path, records)
}

func (s *RecordStore) save(path string, records []*types.UserRecord) error {
	if !hasTableExt(path) {
		return fmt.Errorf("file %s: %w", path, ErrNotCSV)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrFileAccess, path, err)
	}

	if err := writeTable(f, records); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w %s: %w", ErrFileAccess, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrFileAccess, path, err)
	}

	s.logger.Debug("table saved", zap.String("path", path), zap.Int("records", len(records)))
	return nil
}

func (s *RecordStore) readTable(r io.Reader) ([]types.UserRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []types.UserRecord
	header := true
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if header {
			header = false
			if err == nil {
				continue
			}
		}

		var rec types.UserRecord
		if err != nil {
			var csvErr *csv.ParseError
			line := 0
			if errors.As(err, &csvErr) {
				line = csvErr.Line
			}
			err = &ParseError{Line: line, Err: err}
		} else {
			line, _ := reader.FieldPos(0)
			rec, err = parseRow(line, row)
		}
		if err != nil {
			if !s.lenient {
				return nil, err
			}
			s.logger.Warn("skipping malformed table line", zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(line int, row []string) (types.UserRecord, error) {
	if len(row) < len(Header) {
		return types.UserRecord{}, &ParseError{
			Line: line,
			Err:  fmt.Errorf("expected %d columns, got %d", len(Header), len(row)),
		}
	}

	p := rowParser{line: line, row: row}
	rec := types.UserRecord{
		Name:          row[0],
		Gender:        types.Gender(row[1]),
		Age:           p.intAt(2),
		WeightKg:      p.floatAt(3),
		WaistCm:       p.floatAt(4),
		NeckCm:        p.floatAt(5),
		HeightCm:      p.floatAt(6),
		HipCm:         p.floatAt(7),
		BodyFat:       types.BodyFat{Percentage: p.floatAt(8), Group: row[9]},
		DailyCalories: p.floatAt(10),
		CarbsG:        p.floatAt(11),
		ProteinG:      p.floatAt(12),
		FatG:          p.floatAt(13),
		Lifestyle:     types.Lifestyle(row[14]),
	}
	if p.err != nil {
		return types.UserRecord{}, p.err
	}
	return rec, nil
}

// rowParser keeps the first conversion error of a row.
type rowParser struct {
	line int
	row  []string
	err  error
}

func (p *rowParser) intAt(col int) int {
	if p.err != nil {
		return 0
	}
	value, err := strconv.Atoi(strings.TrimSpace(p.row[col]))
	if err != nil {
		p.fail(col, err)
	}
	return value
}

func (p *rowParser) floatAt(col int) float64 {
	if p.err != nil {
		return 0
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(p.row[col]), 64)
	if err != nil {
		p.fail(col, err)
	}
	return value
}

func (p *rowParser) fail(col int, err error) {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	p.err = &ParseError{Line: p.line, Column: Header[col], Value: p.row[col], Err: err}
}

func writeTable(w io.Writer, records []*types.UserRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write(formatRow(rec)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatRow(rec *types.UserRecord) []string {
	return []string{
		rec.Name,
		string(rec.Gender),
		strconv.Itoa(rec.Age),
		formatFloat(rec.WeightKg),
		formatFloat(rec.WaistCm),
		formatFloat(rec.NeckCm),
		formatFloat(rec.HeightCm),
		formatFloat(rec.HipCm),
		formatFloat(rec.BodyFat.Percentage),
		rec.BodyFat.Group,
		formatFloat(rec.DailyCalories),
		formatFloat(rec.CarbsG),
		formatFloat(rec.ProteinG),
		formatFloat(rec.FatG),
		string(rec.Lifestyle),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func hasTableExt(path string) bool {
	return strings.HasSuffix(path, tableExt)
}
