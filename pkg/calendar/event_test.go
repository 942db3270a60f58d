package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvent_Hashtags(t *testing.T) {
	t.Run("should extract tags from title and description case-insensitively", func(t *testing.T) {
		// given
		event := NewEvent("Design review #HCT", "prep notes #Life", "", time.Time{}, time.Time{})

		// when
		tags := event.Hashtags()

		// then
		assert.Equal(t, map[string]bool{"#hct": true, "#life": true}, tags)
	})

	t.Run("should deduplicate repeated tags", func(t *testing.T) {
		// given
		event := NewEvent("sync #hct #hct", "#HCT again", "", time.Time{}, time.Time{})

		// when
		tags := event.Hashtags()

		// then
		assert.Len(t, tags, 1)
		assert.True(t, tags["#hct"])
	})

	t.Run("should pick up tags appended to the title after construction", func(t *testing.T) {
		// given
		event := NewEvent("travel", "reclaim", "", time.Time{}, time.Time{})
		assert.Empty(t, event.Hashtags())

		// when
		event.Title += " #life"

		// then
		assert.True(t, event.Hashtags()["#life"])
	})

	t.Run("should be unaffected by changes to unrelated fields", func(t *testing.T) {
		// given
		event := NewEvent("meeting #hct", "", "Office", time.Time{}, time.Time{})
		before := event.Hashtags()

		// when
		event.Location = "somewhere else"

		// then
		assert.Equal(t, before, event.Hashtags())
	})
}

func TestEvent_Duration(t *testing.T) {
	t.Run("should truncate to whole minutes", func(t *testing.T) {
		// given
		start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
		event := NewEvent("x", "", "", start, start.Add(90*time.Second))

		// when / then
		assert.Equal(t, 1, event.Duration())
	})

	t.Run("should report zero for an instant event", func(t *testing.T) {
		// given
		start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
		event := NewEvent("x", "", "", start, start)

		// when / then
		assert.Equal(t, 0, event.Duration())
	})
}
