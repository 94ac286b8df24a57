// Package store persists the whole application state as a single versioned
// JSON document. Saves always write the full snapshot; there is no partial
// update path.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fluxo-dev/fluxo/internal/model"
)

// Version identifies the on-disk document layout. Loading rejects documents
// written by a newer, unknown layout rather than guessing.
const Version = "1.0"

// ErrNotFound is returned by Load when no state file exists yet.
var ErrNotFound = errors.New("state file not found")

type document struct {
	Version      string              `json:"version"`
	SavedAt      time.Time           `json:"saved_at"`
	Transactions []transactionRecord `json:"transactions"`
	Chart        []groupRecord       `json:"chart"`
	Settings     settingsRecord      `json:"settings"`
}

// Amounts are decimal.Decimal, which marshals as a quoted string, so values
// survive round-trips without float drift.
type transactionRecord struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Payee       string          `json:"payee,omitempty"`
	Bank        string          `json:"bank,omitempty"`
	AmountIn    decimal.Decimal `json:"amount_in"`
	AmountOut   decimal.Decimal `json:"amount_out"`
	Level1      string          `json:"level1,omitempty"`
	Level2      string          `json:"level2,omitempty"`
	Level3      string          `json:"level3,omitempty"`
	CostCenter  string          `json:"cost_center,omitempty"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	DateGuessed bool            `json:"date_guessed,omitempty"`
}

type groupRecord struct {
	Name       string           `json:"name"`
	Categories []categoryRecord `json:"categories,omitempty"`
}

type categoryRecord struct {
	Name  string   `json:"name"`
	Items []string `json:"items,omitempty"`
}

type settingsRecord struct {
	ProjectionMethod string `json:"projection_method,omitempty"`
	ProjectionMonths int    `json:"projection_months,omitempty"`
	AIModel          string `json:"ai_model,omitempty"`
}

// Save writes the full state snapshot to path, creating parent directories
// as needed.
func Save(path string, state *model.AppState) error {
	doc := document{
		Version:      Version,
		SavedAt:      time.Now().UTC(),
		Transactions: make([]transactionRecord, 0, len(state.Transactions)),
		Chart:        encodeChart(state.Chart),
		Settings: settingsRecord{
			ProjectionMethod: state.Settings.ProjectionMethod,
			ProjectionMonths: state.Settings.ProjectionMonths,
			AIModel:          state.Settings.AIModel,
		},
	}
	for _, t := range state.Transactions {
		doc.Transactions = append(doc.Transactions, encodeTransaction(t))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating state directory: %w", err)
		}
	}

	// Write-then-rename so a crash never leaves a truncated document.
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp state file: %w", err)
	}
	_ = os.Chmod(tmp.Name(), 0o644)
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing state: %w", err)
	}
	return nil
}

// Load reads a state snapshot from path. Missing optional fields fall back
// to defaults so older documents keep loading.
func Load(path string) (*model.AppState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	if doc.Version != "" && doc.Version != Version {
		return nil, fmt.Errorf("unsupported state version %q", doc.Version)
	}

	state := &model.AppState{
		Transactions: make([]*model.Transaction, 0, len(doc.Transactions)),
		Chart:        decodeChart(doc.Chart),
		Settings:     decodeSettings(doc.Settings),
	}
	for _, rec := range doc.Transactions {
		state.Transactions = append(state.Transactions, decodeTransaction(rec))
	}
	return state, nil
}

func encodeTransaction(t *model.Transaction) transactionRecord {
	return transactionRecord{
		ID:          t.ID,
		Date:        t.Date,
		Description: t.Description,
		Payee:       t.Payee,
		Bank:        t.Bank,
		AmountIn:    t.AmountIn,
		AmountOut:   t.AmountOut,
		Level1:      t.Classification.Level1,
		Level2:      t.Classification.Level2,
		Level3:      t.Classification.Level3,
		CostCenter:  t.CostCenter,
		Status:      string(t.Status),
		Notes:       t.Notes,
		Reference:   t.Reference,
		DateGuessed: t.DateUnparsed,
	}
}

func decodeTransaction(rec transactionRecord) *model.Transaction {
	t := &model.Transaction{
		ID:          rec.ID,
		Description: rec.Description,
		Payee:       rec.Payee,
		Bank:        rec.Bank,
		AmountIn:    rec.AmountIn,
		AmountOut:   rec.AmountOut,
		Classification: model.Classification{
			Level1: rec.Level1,
			Level2: rec.Level2,
			Level3: rec.Level3,
		},
		CostCenter:   rec.CostCenter,
		Status:       model.ReconciliationStatus(rec.Status),
		Notes:        rec.Notes,
		Reference:    rec.Reference,
		DateUnparsed: rec.DateGuessed,
	}
	if t.Status != model.StatusReconciled {
		t.Status = model.StatusPending
	}
	t.SetDate(rec.Date)
	return t
}

func encodeChart(c model.Chart) []groupRecord {
	groups := make([]groupRecord, 0, len(c.Groups))
	for _, g := range c.Groups {
		gr := groupRecord{Name: g.Name}
		for _, cat := range g.Categories {
			gr.Categories = append(gr.Categories, categoryRecord{
				Name:  cat.Name,
				Items: cat.Items,
			})
		}
		groups = append(groups, gr)
	}
	return groups
}

func decodeChart(groups []groupRecord) model.Chart {
	var c model.Chart
	for _, gr := range groups {
		g := model.ChartGroup{Name: gr.Name}
		for _, cat := range gr.Categories {
			g.Categories = append(g.Categories, model.ChartCategory{
				Name:  cat.Name,
				Items: cat.Items,
			})
		}
		c.Groups = append(c.Groups, g)
	}
	return c
}

func decodeSettings(rec settingsRecord) model.Settings {
	s := model.DefaultSettings()
	if rec.ProjectionMethod != "" {
		s.ProjectionMethod = rec.ProjectionMethod
	}
	if rec.ProjectionMonths > 0 {
		s.ProjectionMonths = rec.ProjectionMonths
	}
	if rec.AIModel != "" {
		s.AIModel = rec.AIModel
	}
	return s
}
