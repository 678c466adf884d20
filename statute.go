package paraglide

import (
	"context"
	"time"
)

// TextKind identifies the kind of a structured text block.
type TextKind string

// Text kinds found in statute documents.
const (
	TextPlain TextKind = "plain"
	TextList  TextKind = "list"
)

// StructuredText represents a single text block within a paragraph or
// subsection. List items carry the GUID and reference of the list number
// element (e.g., "1)"); plain texts carry neither.
type StructuredText struct {
	Kind      TextKind `json:"type"`
	Text      string   `json:"text"`
	GUID      string   `json:"guid,omitempty"`
	Reference string   `json:"reference,omitempty"`
}

// Validate returns an error if the text block contains invalid fields.
func (t *StructuredText) Validate() error {
	if t.Kind != TextPlain && t.Kind != TextList {
		return Errorf(EINVALID, "unknown text kind %q", t.Kind)
	}
	if t.Kind == TextList {
		if t.GUID == "" {
			return Errorf(EINVALID, "list text GUID required")
		}
		if t.Reference == "" {
			return Errorf(EINVALID, "list text reference required")
		}
	}
	return nil
}

// Subsection represents a "Stk." block within a paragraph.
type Subsection struct {
	GUID      string           `json:"guid"`
	Reference string           `json:"reference"` // e.g. "Stk. 2"
	Texts     []StructuredText `json:"texts"`
}

// Validate returns an error if the subsection contains invalid fields.
func (s *Subsection) Validate() error {
	if s.GUID == "" {
		return Errorf(EINVALID, "subsection GUID required")
	}
	if s.Reference == "" {
		return Errorf(EINVALID, "subsection reference required")
	}
	for i := range s.Texts {
		if err := s.Texts[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Paragraph represents a "§" paragraph of a statute.
type Paragraph struct {
	GUID        string           `json:"guid"`
	ID          string           `json:"id"`        // e.g. "P1"
	Reference   string           `json:"reference"` // e.g. "§ 1"
	Texts       []StructuredText `json:"texts"`
	Subsections []*Subsection    `json:"sections"`
}

// Validate returns an error if the paragraph contains invalid fields.
func (p *Paragraph) Validate() error {
	if p.GUID == "" {
		return Errorf(EINVALID, "paragraph GUID required")
	}
	if p.ID == "" {
		return Errorf(EINVALID, "paragraph ID required")
	}
	if p.Reference == "" {
		return Errorf(EINVALID, "paragraph reference required")
	}
	for i := range p.Texts {
		if err := p.Texts[i].Validate(); err != nil {
			return err
		}
	}
	for _, s := range p.Subsections {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Chapter represents a "Kapitel" of a statute.
type Chapter struct {
	Number     int          `json:"number"`
	Title      string       `json:"title"`
	GUID       string       `json:"guid"`
	Paragraphs []*Paragraph `json:"paragraphs"`
}

// Validate returns an error if the chapter contains invalid fields.
func (c *Chapter) Validate() error {
	if c.Number <= 0 {
		return Errorf(EINVALID, "chapter number must be positive")
	}
	if c.Title == "" {
		return Errorf(EINVALID, "chapter title required")
	}
	for _, p := range c.Paragraphs {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Statute represents a piece of Danish legislation as published on
// retsinformation.dk, e.g. "LBK nr 1180 af 21/09/2023".
type Statute struct {
	Number   int        `json:"number"`
	Date     time.Time  `json:"date"`
	Title    string     `json:"title"`
	Chapters []*Chapter `json:"chapters"`
}

// Validate returns an error if the statute contains invalid fields.
func (s *Statute) Validate() error {
	if s.Number <= 0 {
		return Errorf(EINVALID, "statute number must be positive")
	}
	if s.Title == "" {
		return Errorf(EINVALID, "statute title required")
	}
	for _, c := range s.Chapters {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ParagraphRef is a flat reference to a paragraph, used by the refs
// export.
type ParagraphRef struct {
	GUID string `json:"guid"`
	ID   string `json:"id"`
	Ref  string `json:"ref"`
}

// ParagraphRefs returns a flat listing of all paragraph references in
// document order.
func (s *Statute) ParagraphRefs() []ParagraphRef {
	var refs []ParagraphRef
	for _, chapter := range s.Chapters {
		for _, p := range chapter.Paragraphs {
			refs = append(refs, ParagraphRef{GUID: p.GUID, ID: p.ID, Ref: p.Reference})
		}
	}
	return refs
}

// StatuteRecord describes an indexed statute as stored alongside its
// passages.
type StatuteRecord struct {
	ID          string    `json:"id"`
	Number      int       `json:"number"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	ContentHash string    `json:"contentHash"`
	IndexedAt   time.Time `json:"indexedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *StatuteRecord) Validate() error {
	if r.Number <= 0 {
		return Errorf(EINVALID, "statute number must be positive")
	}
	if r.Title == "" {
		return Errorf(EINVALID, "statute title required")
	}
	return nil
}

// StatuteService represents a service for managing indexed statutes.
type StatuteService interface {
	// CreateStatute stores a statute record, replacing any previous
	// record for the same statute number.
	CreateStatute(ctx context.Context, rec *StatuteRecord) error

	// FindStatuteByID retrieves a statute record by ID.
	// Returns ENOTFOUND if the statute does not exist.
	FindStatuteByID(ctx context.Context, id string) (*StatuteRecord, error)

	// FindStatutes retrieves all stored statute records, newest first.
	FindStatutes(ctx context.Context) ([]*StatuteRecord, error)
}
