package appointment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dramanable/rv-server-sub004/internal/domain"
)

// noteRecord формат хранения заметки в JSONB колонке notes
type noteRecord struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func encodeNotes(notes []domain.AppointmentNote) ([]byte, error) {
	records := make([]noteRecord, len(notes))
	for i, n := range notes {
		records[i] = noteRecord{Text: n.Text, CreatedAt: n.CreatedAt}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeNotes, err)
	}
	return data, nil
}

func decodeNotes(data []byte) ([]domain.AppointmentNote, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var records []noteRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
	}

	notes := make([]domain.AppointmentNote, len(records))
	for i, r := range records {
		notes[i] = domain.AppointmentNote{Text: r.Text, CreatedAt: r.CreatedAt}
	}
	return notes, nil
}
