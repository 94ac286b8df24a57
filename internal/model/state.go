package model

// Settings are user preferences carried inside the persisted state document.
type Settings struct {
	ProjectionMethod string
	ProjectionMonths int
	AIModel          string
}

// DefaultSettings returns the settings used for a freshly initialized state.
func DefaultSettings() Settings {
	return Settings{
		ProjectionMethod: "average",
		ProjectionMonths: 6,
		AIModel:          "gemini-2.0-flash",
	}
}

// AppState owns the whole in-memory data set: the transaction collection,
// the chart of accounts and user settings. Engine functions receive it
// explicitly; there are no ambient singletons. Mutations are whole-snapshot:
// callers load a state, mutate it, and persist the replacement.
type AppState struct {
	Transactions []*Transaction
	Chart        Chart
	Settings     Settings
}

// Find returns the transaction with the given ID.
func (s *AppState) Find(id string) (*Transaction, bool) {
	for _, t := range s.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Delete removes the transaction with the given ID, preserving order.
// It reports whether a transaction was removed.
func (s *AppState) Delete(id string) bool {
	for i, t := range s.Transactions {
		if t.ID == id {
			s.Transactions = append(s.Transactions[:i], s.Transactions[i+1:]...)
			return true
		}
	}
	return false
}
