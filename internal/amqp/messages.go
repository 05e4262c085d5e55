package amqp

import (
	"encoding/json"
	"time"
)

// ExportJobMessage asks the worker to render an expense report. The
// worker reads the current ledger itself; the message only carries
// the projection parameters and requested output formats.
type ExportJobMessage struct {
	Author      string    `json:"author"`
	CreatedDate string    `json:"createdDate"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Formats     []string  `json:"formats"`
	Filename    string    `json:"filename"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewExportJobMessage(author, createdDate, startDate, endDate string, formats []string, filename string) *ExportJobMessage {
	return &ExportJobMessage{
		Author:      author,
		CreatedDate: createdDate,
		StartDate:   startDate,
		EndDate:     endDate,
		Formats:     formats,
		Filename:    filename,
		Timestamp:   time.Now(),
	}
}

func (m *ExportJobMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExportJobMessageFromJSON(data []byte) (*ExportJobMessage, error) {
	var msg ExportJobMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
