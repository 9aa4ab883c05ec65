package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_UnmarshalJSON(t *testing.T) {
	data := `{
		"id": 12345678901234567,
		"eventId": "e-1",
		"capacity": 30,
		"remote": false,
		"building": {"nameShort": "A"},
		"_links": {
			"room": {"href": "/401"},
			"persons": [{"href": "/1"}, {"href": "/2"}]
		}
	}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(data), &r))

	assert.Equal(t, "12345678901234567", r.ID)
	assert.Equal(t, "e-1", r.String("eventId"))
	assert.Equal(t, "30", r.String("capacity"))
	assert.Equal(t, "false", r.String("remote"))
	assert.Equal(t, "A", r.String("building", "nameShort"))
	assert.Equal(t, "", r.String("building"))
	assert.Equal(t, "", r.String("missing", "nested"))
	assert.NotContains(t, r.Fields, "_links")

	href, ok := r.Href("room")
	require.True(t, ok)
	assert.Equal(t, "/401", href)

	href, ok = r.Href("persons")
	require.True(t, ok)
	assert.Equal(t, "/1", href)

	_, ok = r.Href("missing")
	assert.False(t, ok)
}

func TestEnvelope_Decode(t *testing.T) {
	data := `{"_embedded": {"events": [{"id": 1, "name": "A", "typeId": 2, "startsAt": "2024-03-01T08:00:00", "endsAt": "2024-03-01T09:00:00"}]}}`

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(data), &env))
	require.Len(t, env.Embedded[CollectionEvents], 1)

	ev := EventFromRecord(env.Embedded[CollectionEvents][0])
	assert.Equal(t, Event{
		ID:       "1",
		Name:     "A",
		TypeID:   "2",
		StartsAt: "2024-03-01T08:00:00",
		EndsAt:   "2024-03-01T09:00:00",
		Record:   env.Embedded[CollectionEvents][0],
	}, ev)
}

func TestIDFromHref(t *testing.T) {
	tests := map[string]string{
		"/401":        "401",
		"401":         "401",
		"/rooms/401":  "401",
		"/401/":       "401",
		"":            "",
		" /abc-def ": "abc-def",
	}
	for href, want := range tests {
		assert.Equal(t, want, IDFromHref(href), href)
	}
}
