package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"schedule-bot/models"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testPhrases = Phrases{
	PhraseSelectScheduleDate: "Now {0}",
	PhraseScheduleForDate:    "Schedule for {0}",
	PhraseLecturer:           "Lecturer:",
	PhraseOnlineEvent:        "Online",
	PhraseEventsNotFound:     "Not found",
}

var testTypes = map[string]string{
	"1": "Lecture",
	"2": "Webinar",
	"3": "Laboratory",
}

func loadBundle(t *testing.T, path string) models.Bundle {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var envelope models.Envelope
	require.NoError(t, json.Unmarshal(data, &envelope))
	return envelope.Embedded
}

func eventsOf(t *testing.T, g *Graph) []models.Event {
	t.Helper()
	records, ok := g.Collection(models.CollectionEvents)
	require.True(t, ok)
	out := make([]models.Event, 0, len(records))
	for _, r := range records {
		out = append(out, models.EventFromRecord(r))
	}
	return out
}

// fakeTypes - справочник типов без сети
type fakeTypes map[string]string

func (f fakeTypes) TypeName(ctx context.Context, typeID string) (string, error) {
	if name, ok := f[typeID]; ok {
		return name, nil
	}
	return typeID, nil
}

// fakeAPI - in-memory upstream API для тестов
type fakeAPI struct {
	mu          sync.Mutex
	bundles     map[string]models.Bundle
	types       map[string]string
	eventsErr   error
	typesErr    error
	delay       time.Duration
	eventCalls  atomic.Int32
	typeCalls   atomic.Int32
	lastRequest string
}

func (f *fakeAPI) FetchEventTypes(ctx context.Context) (map[string]string, error) {
	f.typeCalls.Add(1)
	if f.typesErr != nil {
		return nil, f.typesErr
	}
	return f.types, nil
}

func (f *fakeAPI) FetchEventsForDate(ctx context.Context, date time.Time) (models.Bundle, error) {
	f.eventCalls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	key := date.Format(DateKeyLayout)
	f.mu.Lock()
	f.lastRequest = key
	f.mu.Unlock()

	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	bundle, ok := f.bundles[key]
	if !ok {
		return nil, errors.New("no bundle for " + key)
	}
	return bundle, nil
}

func newTestRenderer(types TypeNamer) *ScheduleRenderer {
	return NewScheduleRenderer(NewEventResolver("Educon", testLogger), types, testPhrases, time.UTC)
}
