// Package history keeps an append-only CSV log of state mutations, one row
// per command that changed the data set. It is a paper trail, not a source
// of truth: the state document never reads from it.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the operations log.
type Entry struct {
	Timestamp time.Time
	Operation string // "import", "classify", "init", ...
	Details   string
	// Affected counts transactions the operation touched.
	Affected int
}

// Header is the CSV header for the operations log.
const Header = "timestamp,operation,details,affected"

const (
	numFields    = 4
	FileName     = "fluxo-history.csv"
	colTimestamp = 0
	colOperation = 1
	colDetails   = 2
	colAffected  = 3
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colOperation] = e.Operation
	row[colDetails] = e.Details
	row[colAffected] = strconv.Itoa(e.Affected)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	affected, err := strconv.Atoi(record[colAffected])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing affected count %q: %w", record[colAffected], err)
	}

	return Entry{
		Timestamp: ts,
		Operation: record[colOperation],
		Details:   record[colDetails],
		Affected:  affected,
	}, nil
}

// Append writes entries to the log next to the state file, creating the file
// and header if needed.
func Append(stateDir string, entries []Entry) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	path := filepath.Join(stateDir, FileName)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from the log in the given directory. Returns an
// empty slice if the file does not exist.
func Read(stateDir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(stateDir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
