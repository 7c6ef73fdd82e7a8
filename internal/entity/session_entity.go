package entity

import (
	"sync"
	"time"

	"survey-dashboard-be/pkg/charts"
	"survey-dashboard-be/pkg/table"
)

type DatasetSource string

const (
	SourceNone       DatasetSource = "none"
	SourceUploaded   DatasetSource = "uploaded"
	SourceUserEdited DatasetSource = "user_edited"
)

// Session is the dashboard state of one browser session. Callers hold Mu for
// the whole event.
type Session struct {
	Mu sync.Mutex

	Id          string
	Dataset     *table.Table
	Label       string
	Source      DatasetSource
	SelectedTab charts.TabID

	// AckedPurgeClicks is the purge counter value the last purge consumed.
	AckedPurgeClicks int
	// Purged is set by a purge and cleared by the next dataset write.
	Purged bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		Id:          id,
		Dataset:     table.Empty(),
		Source:      SourceNone,
		SelectedTab: charts.DefaultTab,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clear drops the dataset and the label.
func (s *Session) Clear() {
	s.Dataset = table.Empty()
	s.Label = ""
	s.Source = SourceNone
	s.UpdatedAt = time.Now()
}

// SetDataset replaces the dataset and records where it came from.
func (s *Session) SetDataset(t *table.Table, source DatasetSource) {
	if t == nil {
		t = table.Empty()
	}
	s.Dataset = t
	s.Source = source
	s.Purged = false
	s.UpdatedAt = time.Now()
}
