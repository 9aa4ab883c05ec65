package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedule-bot/models"
)

func newTestScheduleService(t *testing.T, api *fakeAPI) *ScheduleService {
	t.Helper()
	types := NewEventTypeDirectory(api, 0, testLogger)
	renderer := NewScheduleRenderer(NewEventResolver("Educon", testLogger), types, testPhrases, time.UTC)
	dayCache := NewDayCache(0, 0, testPhrases.Get(PhraseEventsNotFound), testLogger)
	return NewScheduleService(api, renderer, dayCache, 7, time.UTC, testLogger)
}

func TestNeighborDates(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want models.Neighbors
	}{
		{
			name: "leap day rollover",
			date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want: models.Neighbors{
				Yesterday: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
				Tomorrow:  time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
				WeekAgo:   time.Date(2024, 2, 23, 0, 0, 0, 0, time.UTC),
				AfterWeek: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "year rollover",
			date: time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC),
			want: models.Neighbors{
				Yesterday: time.Date(2023, 12, 27, 0, 0, 0, 0, time.UTC),
				Tomorrow:  time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC),
				WeekAgo:   time.Date(2023, 12, 21, 0, 0, 0, 0, time.UTC),
				AfterWeek: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeighborDates(tt.date))
		})
	}
}

func TestScheduleService_ShowSchedule(t *testing.T) {
	api := &fakeAPI{
		bundles: map[string]models.Bundle{"2024-03-01": loadBundle(t, "testdata/day.json")},
		types:   testTypes,
	}
	s := newTestScheduleService(t, api)

	view := s.ShowSchedule(context.Background(), time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC))
	assert.True(t, view.Found)
	assert.False(t, view.Cached)
	assert.Equal(t, wantDayText, view.Text)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), view.Date)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), view.Neighbors.Yesterday)

	again := s.ShowSchedule(context.Background(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, again.Cached)
	assert.Equal(t, view.Text, again.Text)

	assert.Equal(t, int32(1), api.eventCalls.Load())
	assert.Equal(t, int32(1), api.typeCalls.Load())
}

func TestScheduleService_ShowSchedule_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		api    *fakeAPI
		bundle func(t *testing.T) models.Bundle
	}{
		{
			name: "upstream unavailable",
			api:  &fakeAPI{eventsErr: ErrUpstreamUnavailable, types: testTypes},
		},
		{
			name: "no events collection",
			api:  &fakeAPI{bundles: map[string]models.Bundle{"2024-03-01": {}}, types: testTypes},
		},
		{
			name: "type catalog unavailable",
			api: &fakeAPI{
				typesErr: ErrUpstreamUnavailable,
			},
			bundle: func(t *testing.T) models.Bundle { return loadBundle(t, "testdata/day.json") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.bundle != nil {
				tt.api.bundles = map[string]models.Bundle{"2024-03-01": tt.bundle(t)}
			}
			s := newTestScheduleService(t, tt.api)

			view := s.ShowSchedule(context.Background(), testDay)
			assert.False(t, view.Found)
			assert.Equal(t, "Not found", view.Text)
			assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), view.Neighbors.AfterWeek)

			again := s.ShowSchedule(context.Background(), testDay)
			assert.True(t, again.Cached)
			assert.Equal(t, "Not found", again.Text)
			assert.Equal(t, int32(1), tt.api.eventCalls.Load())
		})
	}
}

func TestScheduleService_StartChoices(t *testing.T) {
	s := newTestScheduleService(t, &fakeAPI{})

	dates := s.StartChoices(time.Date(2024, 2, 27, 21, 15, 0, 0, time.UTC))
	require.Len(t, dates, 7)
	assert.Equal(t, time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), dates[2])
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), dates[6])
}

func TestScheduleService_InvalidateCache(t *testing.T) {
	api := &fakeAPI{
		bundles: map[string]models.Bundle{"2024-03-01": loadBundle(t, "testdata/day.json")},
		types:   testTypes,
	}
	s := newTestScheduleService(t, api)

	s.ShowSchedule(context.Background(), testDay)
	s.InvalidateCache()
	view := s.ShowSchedule(context.Background(), testDay)

	assert.False(t, view.Cached)
	assert.Equal(t, int32(2), api.eventCalls.Load())
	assert.Equal(t, int32(1), api.typeCalls.Load(), "type catalog outlives the day cache")
}
