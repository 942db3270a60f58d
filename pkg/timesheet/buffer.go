package timesheet

import (
	"strings"

	"github.com/caltime/caltime/pkg/calendar"
)

// A buffer event is travel or decompression time around a substantive event,
// flagged for reclassification. It carries no job hashtag of its own and
// inherits the tags of the event it directly precedes or follows.

func isBufferEvent(e *calendar.Event) bool {
	// Event text is lower-cased at construction, so plain Contains is
	// already case-insensitive.
	if !strings.Contains(e.Title, "travel") && !strings.Contains(e.Title, "decompress") {
		return false
	}
	return strings.Contains(e.Description, "reclaim")
}

// isSubstantive reports whether an event represents actual attendance:
// it has a physical location or is an online meeting.
func isSubstantive(e *calendar.Event) bool {
	return e.Location != "" ||
		strings.Contains(e.Description, "teams.microsoft.com") ||
		strings.Contains(e.Description, "zoom.us")
}

// reconcileBufferEvents relabels the week's buffer events in place: a buffer
// event ending exactly when a substantive event starts (or starting exactly
// when one finishes) gains that event's hashtags, except those it already
// carries. Each buffer event can be claimed at most once: a claimed event
// is removed from both lookup maps, by its own start and finish keys, so a
// buffer wedged between two meetings goes to the earlier one. When two
// buffer events share a start or finish instant the last one indexed wins;
// the earlier entry is simply overwritten.
//
// Running this twice over the same batch is a no-op the second time: the
// tags appended by the first run are part of the buffer event's own hashtag
// set from then on.
func reconcileBufferEvents(events []calendar.Event) {
	byStart := make(map[int64]*calendar.Event)
	byFinish := make(map[int64]*calendar.Event)
	for i := range events {
		event := &events[i]
		if isBufferEvent(event) {
			byStart[event.Start.UnixNano()] = event
			byFinish[event.Finish.UnixNano()] = event
		}
	}

	for i := range events {
		event := &events[i]
		if !isSubstantive(event) {
			continue
		}
		// buffer immediately before this event
		if buffer, ok := byFinish[event.Start.UnixNano()]; ok {
			delete(byFinish, buffer.Finish.UnixNano())
			delete(byStart, buffer.Start.UnixNano())
			appendMissingTags(buffer, event)
		}
		// buffer immediately after this event
		if buffer, ok := byStart[event.Finish.UnixNano()]; ok {
			delete(byStart, buffer.Start.UnixNano())
			delete(byFinish, buffer.Finish.UnixNano())
			appendMissingTags(buffer, event)
		}
	}
}

func appendMissingTags(buffer *calendar.Event, event *calendar.Event) {
	carried := buffer.Hashtags()
	for tag := range event.Hashtags() {
		if !carried[tag] {
			buffer.Title += " " + tag
		}
	}
}
