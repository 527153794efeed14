package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zjrosen/plenum/internal/models"
)

// RecordModel is one row of the records table.
type RecordModel struct {
	Collection string
	ID         int
	Data       string // JSON encoded record
	UpdatedAt  int64  // Unix timestamp
}

func toRecordModel(rec models.Record, now time.Time) (*RecordModel, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s/%d: %w", rec.Collection(), rec.GetID(), err)
	}
	return &RecordModel{
		Collection: rec.Collection(),
		ID:         rec.GetID(),
		Data:       string(data),
		UpdatedAt:  now.Unix(),
	}, nil
}

func (m *RecordModel) toRecord() (models.Record, error) {
	return models.Decode(m.Collection, []byte(m.Data))
}
