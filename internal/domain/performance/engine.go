package performance

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Engine holds everything the transition functions read besides their
// inputs: the allow table, the rating bands, a clock and an id source.
// Its methods never touch storage.
type Engine struct {
	Policy Policy
	Bands  RatingBands
	Now    func() time.Time
	NewID  func() string
}

func NewEngine(policy Policy, bands RatingBands) *Engine {
	return &Engine{
		Policy: policy,
		Bands:  bands,
		Now:    func() time.Time { return time.Now().UTC() },
		NewID:  uuid.NewString,
	}
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now().UTC()
	}
	return e.Now()
}

func (e *Engine) newID() string {
	if e.NewID == nil {
		return uuid.NewString()
	}
	return e.NewID()
}

func (e *Engine) comment(actor Actor, text string, at time.Time) ReviewComment {
	return ReviewComment{
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		AuthorRole: actor.Role,
		Text:       strings.TrimSpace(text),
		Timestamp:  at,
	}
}
