package loader

import (
	"time"

	"github.com/google/uuid"

	"github.com/seuros/lpexplorer/internal/sheet"
)

// Source tells where a snapshot's pages came from.
type Source string

const (
	SourceLive Source = "live"
	SourceDemo Source = "demo"
)

// Snapshot is the result of one load cycle. It is never modified after
// construction; readers may share it freely.
type Snapshot struct {
	ID       uuid.UUID
	LoadedAt time.Time
	Source   Source
	SheetURL string
	Notice   string
	Err      error
	Pages    []sheet.PageRecord
}

// Meta is the JSON-friendly description of a snapshot.
type Meta struct {
	ID        string    `json:"id" yaml:"id"`
	LoadedAt  time.Time `json:"loaded_at" yaml:"loaded_at"`
	Source    Source    `json:"source" yaml:"source"`
	SheetURL  string    `json:"sheet_url,omitempty" yaml:"sheet_url,omitempty"`
	Notice    string    `json:"notice" yaml:"notice"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
	PageCount int       `json:"page_count" yaml:"page_count"`
}

// Meta describes s without its pages.
func (s *Snapshot) Meta() Meta {
	m := Meta{
		ID:        s.ID.String(),
		LoadedAt:  s.LoadedAt,
		Source:    s.Source,
		SheetURL:  s.SheetURL,
		Notice:    s.Notice,
		PageCount: len(s.Pages),
	}
	if s.Err != nil {
		m.Error = s.Err.Error()
	}
	return m
}

// ETag identifies the snapshot for HTTP caching.
func (s *Snapshot) ETag() string {
	return `"` + s.ID.String() + `"`
}
