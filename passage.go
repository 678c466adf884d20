package paraglide

import (
	"context"
	"fmt"
	"strings"
)

// PassageKind identifies the source element of a passage.
type PassageKind string

// Passage kinds.
const (
	PassageParagraph  PassageKind = "paragraph"
	PassageSubsection PassageKind = "subsection"
)

// Passage is the embeddable retrieval unit: a paragraph or subsection
// flattened out of a statute together with its chapter context.
type Passage struct {
	GUID          string      `json:"guid"`
	StatuteID     string      `json:"statuteId"`
	Kind          PassageKind `json:"kind"`
	Reference     string      `json:"reference"`
	ChapterNumber int         `json:"chapterNumber"`
	ChapterTitle  string      `json:"chapterTitle"`
	ParentGUID    string      `json:"parentGuid,omitempty"` // paragraph GUID for subsections
	Content       string      `json:"content"`
	Position      int         `json:"position"`
}

// Validate returns an error if the passage contains invalid fields.
func (p *Passage) Validate() error {
	if p.GUID == "" {
		return Errorf(EINVALID, "passage GUID required")
	}
	if p.Kind != PassageParagraph && p.Kind != PassageSubsection {
		return Errorf(EINVALID, "unknown passage kind %q", p.Kind)
	}
	if p.Content == "" {
		return Errorf(EINVALID, "passage content required")
	}
	return nil
}

// EmbedText renders the passage as the text that gets embedded: a
// metadata header followed by the content, in Danish. The GUID is
// deliberately excluded from the embedded metadata.
func (p *Passage) EmbedText() string {
	var entries []string
	if p.Kind == PassageParagraph {
		entries = append(entries, "Type: Paragraf,")
	}
	entries = append(entries,
		fmt.Sprintf("Reference: %s,", p.Reference),
		fmt.Sprintf("Kapitel nummer: %d,", p.ChapterNumber),
		fmt.Sprintf("Kapitel overskrift: %s,", p.ChapterTitle),
	)
	return "Meta data:\n" + strings.Join(entries, " ") + "\n\nIndhold:\n" + p.Content
}

// ConcatTexts joins structured texts into passage content. List items
// are prefixed with their reference number.
func ConcatTexts(texts []StructuredText) string {
	var sb strings.Builder
	for _, t := range texts {
		switch t.Kind {
		case TextList:
			sb.WriteString(t.Reference)
			sb.WriteString(" ")
			sb.WriteString(t.Text)
		default:
			sb.WriteString(t.Text)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FlattenPassages converts a statute into its retrieval passages in
// document order. Each paragraph yields one passage; each of its
// subsections yields a further passage linked to the paragraph via
// ParentGUID.
func FlattenPassages(statute *Statute) []*Passage {
	var passages []*Passage
	position := 0

	for _, chapter := range statute.Chapters {
		for _, paragraph := range chapter.Paragraphs {
			passages = append(passages, &Passage{
				GUID:          paragraph.GUID,
				Kind:          PassageParagraph,
				Reference:     paragraph.Reference,
				ChapterNumber: chapter.Number,
				ChapterTitle:  chapter.Title,
				Content:       ConcatTexts(paragraph.Texts),
				Position:      position,
			})
			position++

			for _, sub := range paragraph.Subsections {
				passages = append(passages, &Passage{
					GUID:          sub.GUID,
					Kind:          PassageSubsection,
					Reference:     sub.Reference,
					ChapterNumber: chapter.Number,
					ChapterTitle:  chapter.Title,
					ParentGUID:    paragraph.GUID,
					Content:       ConcatTexts(sub.Texts),
					Position:      position,
				})
				position++
			}
		}
	}

	return passages
}

// PassageFilter represents a filter for FindPassages.
type PassageFilter struct {
	GUID      *string `json:"guid"`
	StatuteID *string `json:"statuteId"`
	Kind      *string `json:"kind"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PassageService represents a service for managing stored passages.
type PassageService interface {
	// CreatePassages stores passages in a batch.
	CreatePassages(ctx context.Context, passages []*Passage) error

	// FindPassageByGUID retrieves a passage by GUID.
	// Returns ENOTFOUND if the passage does not exist.
	FindPassageByGUID(ctx context.Context, guid string) (*Passage, error)

	// FindPassages retrieves passages matching the filter, ordered by
	// document position.
	FindPassages(ctx context.Context, filter PassageFilter) ([]*Passage, error)

	// CountPassages returns the number of stored passages.
	CountPassages(ctx context.Context) (int, error)
}
