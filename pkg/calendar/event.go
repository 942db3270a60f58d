package calendar

import (
	"regexp"
	"strings"
	"time"
)

var hashtagPattern = regexp.MustCompile(`#\w+`)

// Event is a single timed calendar entry. Text fields are lower-cased on
// construction so hashtag and keyword matching is case-insensitive.
type Event struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	Finish      time.Time
}

// NewEvent builds an Event with normalized text fields. Start is expected to
// be before or equal to Finish.
func NewEvent(title, description, location string, start, finish time.Time) Event {
	return Event{
		Title:       strings.ToLower(title),
		Description: strings.ToLower(description),
		Location:    strings.ToLower(location),
		Start:       start,
		Finish:      finish,
	}
}

// Duration returns the length of the event in whole minutes, truncated.
func (e *Event) Duration() int {
	return int(e.Finish.Sub(e.Start) / time.Minute)
}

// Hashtags extracts the set of "#word" tokens from the title and description.
// It is recomputed on every call: the title can be amended after construction
// and the result must always reflect the current text.
func (e *Event) Hashtags() map[string]bool {
	tags := make(map[string]bool)
	for _, tag := range hashtagPattern.FindAllString(e.Title+" "+e.Description, -1) {
		tags[tag] = true
	}
	return tags
}
