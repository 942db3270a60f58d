package calendar

import (
	"context"
	"iter"
	"sort"
	"time"
)

// StubEventSource is an in-memory EventSource for tests.
type StubEventSource struct {
	events []Event
	err    error
}

func NewStubEventSource() *StubEventSource {
	return &StubEventSource{}
}

func (s *StubEventSource) AddEvent(event Event) {
	s.events = append(s.events, event)
}

// FailWith makes the sequence end with the given error after all events.
func (s *StubEventSource) FailWith(err error) {
	s.err = err
}

func (s *StubEventSource) Events(_ context.Context, from time.Time, to time.Time, _ string) iter.Seq2[Event, error] {
	var selected []Event
	for _, event := range s.events {
		if !event.Start.Before(from) && event.Start.Before(to) {
			selected = append(selected, event)
		}
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Start.Before(selected[j].Start)
	})

	return func(yield func(Event, error) bool) {
		for _, event := range selected {
			if !yield(event, nil) {
				return
			}
		}
		if s.err != nil {
			yield(Event{}, s.err)
		}
	}
}

func (s *StubEventSource) Cleanup() {
	s.events = nil
	s.err = nil
}
