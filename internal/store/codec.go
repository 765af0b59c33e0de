package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/crimson-sun/strictwatch/internal/model"
)

// schemaVersion is written into every blob. Blobs with another version are
// treated as undecodable; there is no migration.
const schemaVersion = 1

// ErrDecode reports a blob that does not match the history schema.
var ErrDecode = errors.New("history decode failure")

type historyDoc struct {
	Version int              `json:"version" validate:"eq=1"`
	Reports []incidentRecord `json:"reports" validate:"dive"`
}

type incidentRecord struct {
	ID          string    `json:"id" validate:"required"`
	Kind        string    `json:"kind,omitempty" validate:"omitempty,violation_kind"`
	Title       string    `json:"title" validate:"required"`
	Key         string    `json:"key" validate:"required"`
	DetailLines []string  `json:"detail_lines"`
	OccurredAt  time.Time `json:"occurred_at" validate:"required"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func schemaValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("violation_kind", func(fl validator.FieldLevel) bool {
			return model.ViolationKind(fl.Field().String()).Known()
		})
	})
	return validate
}

func encode(incidents []model.Incident) ([]byte, error) {
	doc := historyDoc{Version: schemaVersion, Reports: make([]incidentRecord, len(incidents))}
	for i, inc := range incidents {
		doc.Reports[i] = incidentRecord{
			ID:          inc.ID,
			Kind:        string(inc.Kind),
			Title:       inc.Title,
			Key:         inc.Key,
			DetailLines: inc.DetailLines,
			OccurredAt:  inc.OccurredAt,
		}
	}
	return json.Marshal(doc)
}

func decode(blob []byte) ([]model.Incident, error) {
	dec := json.NewDecoder(bytes.NewReader(blob))
	dec.DisallowUnknownFields()

	var doc historyDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := schemaValidator().Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	incidents := make([]model.Incident, len(doc.Reports))
	for i, r := range doc.Reports {
		incidents[i] = model.Incident{
			ID:          r.ID,
			Kind:        model.ViolationKind(r.Kind),
			Title:       r.Title,
			Key:         r.Key,
			DetailLines: r.DetailLines,
			OccurredAt:  r.OccurredAt,
		}
	}
	return incidents, nil
}
