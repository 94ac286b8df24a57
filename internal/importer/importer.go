// Package importer reads raw bank CSV exports into transactions. Import
// favors availability: malformed fields degrade to safe defaults with
// warnings and malformed rows are skipped, never aborting the batch. Only
// an empty file, zero valid rows, or an unsupported file type are fatal.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluxo-dev/fluxo/internal/model"
	"github.com/fluxo-dev/fluxo/internal/parse"
)

var (
	// ErrEmptyFile is returned for inputs without a single row.
	ErrEmptyFile = errors.New("import file is empty")
	// ErrNoValidRows is returned when every data row was skipped.
	ErrNoValidRows = errors.New("no valid rows in import file")
	// ErrUnsupportedFormat is returned for non-CSV files.
	ErrUnsupportedFormat = errors.New("unsupported file type")
)

// RowWarning reports a lenient-parse substitution or a skipped row.
type RowWarning struct {
	Line    int // 1-based, header is line 1
	Message string
}

// Result is the outcome of one import batch.
type Result struct {
	Transactions []*model.Transaction
	Warnings     []RowWarning
	Skipped      int
}

// File imports a CSV file from disk. now is the processing date substituted
// for unparseable dates.
func File(path string, now time.Time) (*Result, error) {
	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()
	return Read(f, now)
}

// Read imports CSV rows from r. The first row is the header; columns are
// resolved by fuzzy name matching.
func Read(r io.Reader, now time.Time) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headers := records[0]
	columns := mapColumns(headers)

	result := &Result{}
	if !headerMatched(headers, fieldDate) {
		result.Warnings = append(result.Warnings, RowWarning{
			Line:    1,
			Message: "no date header recognized, assuming first column",
		})
	}
	if !headerMatched(headers, fieldDesc) {
		result.Warnings = append(result.Warnings, RowWarning{
			Line:    1,
			Message: "no description header recognized, assuming second column",
		})
	}

	for i, rec := range records[1:] {
		line := i + 2
		txn, warns := buildTransaction(rec, columns, now, line)
		result.Warnings = append(result.Warnings, warns...)
		if txn == nil {
			result.Skipped++
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}

	if len(result.Transactions) == 0 {
		return nil, ErrNoValidRows
	}
	return result, nil
}

func headerMatched(headers []string, f field) bool {
	for _, h := range headers {
		folded := foldHeader(h)
		for _, alias := range aliases[f] {
			if strings.Contains(folded, alias) {
				return true
			}
		}
	}
	return false
}

func cell(rec []string, columns map[field]int, f field) (string, bool) {
	idx, ok := columns[f]
	if !ok || idx >= len(rec) {
		return "", false
	}
	return strings.TrimSpace(rec[idx]), true
}

// buildTransaction converts one CSV row. A nil transaction means the row
// was skipped; warnings explain every substitution and skip.
func buildTransaction(rec []string, columns map[field]int, now time.Time, line int) (*model.Transaction, []RowWarning) {
	var warns []RowWarning

	rawDate, _ := cell(rec, columns, fieldDate)
	date, dateWarn := parse.Date(rawDate, now)
	if dateWarn != nil {
		warns = append(warns, RowWarning{Line: line, Message: dateWarn.String()})
	}

	var in, out decimal.Decimal
	rawIn, hasIn := cell(rec, columns, fieldIn)
	rawOut, hasOut := cell(rec, columns, fieldOut)
	if hasIn || hasOut {
		var w *parse.Warning
		if in, w = parse.Amount(rawIn); w != nil {
			warns = append(warns, RowWarning{Line: line, Message: w.String()})
		}
		if out, w = parse.Amount(rawOut); w != nil {
			warns = append(warns, RowWarning{Line: line, Message: w.String()})
		}
	} else if rawAmount, ok := cell(rec, columns, fieldAmount); ok {
		// Single signed column: positive is inflow, negative is outflow.
		amount, w := parse.Amount(rawAmount)
		if w != nil {
			warns = append(warns, RowWarning{Line: line, Message: w.String()})
		}
		if amount.IsNegative() {
			out = amount.Abs()
		} else {
			in = amount
		}
	}

	if in.IsZero() && out.IsZero() {
		warns = append(warns, RowWarning{Line: line, Message: "row skipped: no amounts"})
		return nil, warns
	}

	desc, _ := cell(rec, columns, fieldDesc)
	payee, _ := cell(rec, columns, fieldPayee)
	bank, _ := cell(rec, columns, fieldBank)
	category, _ := cell(rec, columns, fieldCategory)
	notes, _ := cell(rec, columns, fieldNotes)

	if desc == "" && payee == "" {
		warns = append(warns, RowWarning{Line: line, Message: "row skipped: no description or payee"})
		return nil, warns
	}

	txn := &model.Transaction{
		ID:          uuid.NewString(),
		Description: desc,
		Payee:       payee,
		Bank:        bank,
		AmountIn:    in.Abs(),
		AmountOut:   out.Abs(),
		Status:      model.StatusPending,
		Notes:       notes,
		Classification: model.Classification{
			Level1: category,
		},
		DateUnparsed: dateWarn != nil,
	}
	txn.SetDate(date)
	return txn, warns
}
