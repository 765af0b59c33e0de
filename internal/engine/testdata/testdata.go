package testdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed corpus.json
var corpusJSON []byte

// CorpusEntry is a captured logcat incident with its expected classification.
type CorpusEntry struct {
	Lines        []string `json:"lines"`
	ExpectedKind string   `json:"expected_kind"` // "" for unclassified
	Suppressed   bool     `json:"suppressed"`
	Description  string   `json:"description"`
}

// LoadCorpus parses the embedded corpus.json and returns all entries.
func LoadCorpus() ([]CorpusEntry, error) {
	var entries []CorpusEntry
	if err := json.Unmarshal(corpusJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus.json: %w", err)
	}
	return entries, nil
}
