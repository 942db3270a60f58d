package bankholiday

import (
	"context"
	"time"
)

// StubClient is an in-memory Client for tests.
type StubClient struct {
	holidays map[int]map[string]time.Time
	err      error
}

func NewStubClient() *StubClient {
	return &StubClient{holidays: map[int]map[string]time.Time{}}
}

func (s *StubClient) AddHoliday(name string, date time.Time) {
	year := date.Year()
	if s.holidays[year] == nil {
		s.holidays[year] = map[string]time.Time{}
	}
	s.holidays[year][name] = date
}

func (s *StubClient) FailWith(err error) {
	s.err = err
}

func (s *StubClient) Holidays(_ context.Context, year int) (map[string]time.Time, error) {
	if s.err != nil {
		return nil, s.err
	}
	holidays := map[string]time.Time{}
	for name, date := range s.holidays[year] {
		holidays[name] = date
	}
	return holidays, nil
}

func (s *StubClient) Cleanup() {
	s.holidays = map[int]map[string]time.Time{}
	s.err = nil
}
