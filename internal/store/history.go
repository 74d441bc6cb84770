package store

import (
	"encoding/json"
	"strings"
)

// MaxRecentSearches bounds the search history.
const MaxRecentSearches = 5

// HistoryRepo keeps the most recent search terms, newest first.
type HistoryRepo struct {
	kv KV
}

func NewHistoryRepo(kv KV) *HistoryRepo {
	return &HistoryRepo{kv: kv}
}

// List returns the stored terms. Corrupt data reads as empty.
func (r *HistoryRepo) List() []string {
	raw, ok, err := r.kv.Get(KeyRecentSearches)
	if err != nil || !ok {
		return nil
	}
	var terms []string
	if err := json.Unmarshal([]byte(raw), &terms); err != nil {
		return nil
	}
	return terms
}

// Add records term at the front, dropping any earlier copy.
func (r *HistoryRepo) Add(term string) ([]string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.List(), nil
	}

	terms := []string{term}
	for _, t := range r.List() {
		if t != term {
			terms = append(terms, t)
		}
	}
	if len(terms) > MaxRecentSearches {
		terms = terms[:MaxRecentSearches]
	}

	data, err := json.Marshal(terms)
	if err != nil {
		return nil, err
	}
	return terms, r.kv.Set(KeyRecentSearches, string(data))
}

// Clear forgets every term.
func (r *HistoryRepo) Clear() error {
	return r.kv.Delete(KeyRecentSearches)
}
