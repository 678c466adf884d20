package paraglide

import (
	"context"
	"sort"
	"strings"
)

// StatuteQuery represents a question about the parental leave statute,
// optionally qualified by the asker's situation (e.g. "arbejdsforhold":
// "lønmodtager").
type StatuteQuery struct {
	Question           string            `json:"question"`
	SituationalContext map[string]string `json:"situationalContext,omitempty"`
}

// Validate returns an error if the query contains invalid fields.
func (q *StatuteQuery) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return Errorf(EINVALID, "question required")
	}
	return nil
}

// RetrieverQuery renders the question with the situational context as a
// prefix, which is the text that gets embedded for retrieval. Context
// keys are emitted in sorted order so the result is deterministic.
func (q *StatuteQuery) RetrieverQuery() string {
	var sb strings.Builder

	if len(q.SituationalContext) > 0 {
		sb.WriteString("Min nuværende situtation er:\n")

		keys := make([]string, 0, len(q.SituationalContext))
		for k := range q.SituationalContext {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			sb.WriteString(" - ")
			sb.WriteString(k)
			sb.WriteString(": ")
			sb.WriteString(q.SituationalContext[k])
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Mit spørgsmål er:\n")
	sb.WriteString(q.Question)

	return sb.String()
}

// QAService produces conversational responses to statute queries. The
// response is emitted in chunks so callers can stream it as it is
// produced.
type QAService interface {
	// Respond retrieves passages relevant to the query and emits a
	// Danish response built from them.
	Respond(ctx context.Context, query StatuteQuery, emit func(text string)) error
}

// Answerer synthesizes a grounded answer from retrieved passages.
// Implementations are optional; retrieval-only responses are the
// default behavior.
type Answerer interface {
	// Answer produces a Danish answer to the question based only on the
	// given passages.
	Answer(ctx context.Context, question string, results []SearchResult) (string, error)
}
