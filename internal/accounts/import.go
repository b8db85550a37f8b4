package accounts

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/WinterJet2021/BahtBuddy/internal/apperrors"
	"github.com/WinterJet2021/BahtBuddy/internal/model"
	"github.com/WinterJet2021/BahtBuddy/internal/validation"
)

// Row is one candidate chart-of-accounts entry from an import file.
// Line is its position in the source (file line for CSV, 1-based element
// index for JSON) so batch errors can point back at it.
type Row struct {
	Line int
	Name string
	Type string
}

// RowError records why one import row was rejected.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}

// ImportSummary is the combined outcome of a batch import. Skipped counts
// valid rows whose (name, type) already existed.
type ImportSummary struct {
	Added   int
	Skipped int
	Errors  []RowError
}

// ImportChart validates each candidate row independently, inserts the
// valid ones in a single unit of work, and reports per-row errors for the
// rest. A batch with no valid rows at all returns
// apperrors.ErrNoValidAccounts alongside the collected errors; bad rows
// never abort the batch.
func (s *Service) ImportChart(rows []Row) (ImportSummary, error) {
	var (
		summary ImportSummary
		valid   []model.Account
	)
	for i, row := range rows {
		line := row.Line
		if line == 0 {
			line = i + 1
		}
		if err := validation.Row(row.Name, row.Type); err != nil {
			summary.Errors = append(summary.Errors, RowError{Line: line, Reason: err.Error()})
			continue
		}
		accountType, _ := validation.AccountType(row.Type)
		valid = append(valid, model.Account{
			Name: strings.TrimSpace(row.Name),
			Type: accountType,
		})
	}

	if len(valid) == 0 {
		return summary, apperrors.ErrNoValidAccounts
	}

	added, skipped, err := s.store.BulkInsertAccounts(valid)
	if err != nil {
		return summary, fmt.Errorf("importing chart: %w", err)
	}
	summary.Added = added
	summary.Skipped = skipped

	s.log.Info().
		Int("added", summary.Added).
		Int("skipped", summary.Skipped).
		Int("errors", len(summary.Errors)).
		Msg("chart imported")
	return summary, nil
}

// ReadRows parses a CSV chart file. The first line must be the
// "name,type" header; data rows follow. Row positions are file line
// numbers, so the first data row is line 2. Lines with the wrong field
// count are reported as RowErrors, not failures, so one ragged line
// never aborts the batch.
func ReadRows(r io.Reader) ([]Row, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	var (
		rows []Row
		errs []RowError
	)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) && errors.Is(perr.Err, csv.ErrFieldCount) {
			if line == 1 {
				return nil, nil, fmt.Errorf("chart CSV must start with a name,type header, got %q", strings.Join(rec, ","))
			}
			errs = append(errs, RowError{Line: line, Reason: fmt.Sprintf("want 2 fields (name,type), got %d", len(rec))})
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading chart CSV: %w", err)
		}
		if line == 1 {
			if !strings.EqualFold(strings.TrimSpace(rec[0]), "name") ||
				!strings.EqualFold(strings.TrimSpace(rec[1]), "type") {
				return nil, nil, fmt.Errorf("chart CSV must start with a name,type header, got %q", strings.Join(rec, ","))
			}
			continue
		}
		rows = append(rows, Row{Line: line, Name: rec[0], Type: rec[1]})
	}
	return rows, errs, nil
}

// jsonRow mirrors one element of a JSON chart file.
type jsonRow struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ReadRowsJSON parses a JSON chart file: an array of {"name", "type"}
// objects. Row positions are 1-based element indexes.
func ReadRowsJSON(r io.Reader) ([]Row, error) {
	var items []jsonRow
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("reading chart JSON: %w", err)
	}

	rows := make([]Row, 0, len(items))
	for i, item := range items {
		rows = append(rows, Row{Line: i + 1, Name: item.Name, Type: item.Type})
	}
	return rows, nil
}
