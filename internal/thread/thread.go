// Package thread reconstructs a conversation view from the raw messages
// sharing a thread identity.
package thread

import (
	"sort"

	"github.com/maildeck/mailsift/internal/content"
)

// Message is one processed entry of a thread view.
type Message struct {
	Raw      content.RawMessage       `json:"raw"`
	Content  content.ProcessedContent `json:"content"`
	Expanded bool                     `json:"expanded"`
}

// View is the ordered, processed rendering of one thread. Display order is
// newest-first; exactly the chronologically last message starts expanded.
// Views are built on demand and never persisted.
type View struct {
	Messages []Message `json:"messages"`
}

// Reconstructor runs the content pipeline across a whole thread.
type Reconstructor struct {
	proc *content.Processor
}

func NewReconstructor(proc *content.Processor) *Reconstructor {
	return &Reconstructor{proc: proc}
}

// Reconstruct orders messages chronologically, processes each with its
// chronological predecessor as duplicate-detection context (what the
// recipient actually read next, not what is displayed above it), marks the
// newest message expanded, and returns the view newest-first. An empty
// input yields an empty view, not an error.
func (r *Reconstructor) Reconstruct(messages []content.RawMessage) View {
	if len(messages) == 0 {
		return View{}
	}

	ordered := make([]content.RawMessage, len(messages))
	copy(ordered, messages)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	processed := make([]Message, len(ordered))
	for i, msg := range ordered {
		previous := ""
		if i > 0 {
			previous = ordered[i-1].Body
		}
		processed[i] = Message{
			Raw:      msg,
			Content:  r.proc.Process(msg.Body, previous),
			Expanded: i == len(ordered)-1,
		}
	}

	// Newest first for display.
	view := View{Messages: make([]Message, len(processed))}
	for i, m := range processed {
		view.Messages[len(processed)-1-i] = m
	}
	return view
}
