package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"schedule-bot/models"
)

// ScheduleService связывает кэш дня, upstream API и рендер
type ScheduleService struct {
	api       ScheduleAPI
	renderer  *ScheduleRenderer
	dayCache  *DayCache
	startDays int
	location  *time.Location
	logger    *slog.Logger
}

func NewScheduleService(api ScheduleAPI, renderer *ScheduleRenderer, dayCache *DayCache, startDays int, location *time.Location, logger *slog.Logger) *ScheduleService {
	if logger == nil {
		logger = slog.Default()
	}
	if location == nil {
		location = time.Local
	}
	if startDays <= 0 {
		startDays = 7
	}
	return &ScheduleService{
		api:       api,
		renderer:  renderer,
		dayCache:  dayCache,
		startDays: startDays,
		location:  location,
		logger:    logger,
	}
}

// ShowSchedule возвращает текст дня (или фразу "не найдено") и соседние даты
func (s *ScheduleService) ShowSchedule(ctx context.Context, date time.Time) models.ScheduleView {
	date = s.Truncate(date)
	entry, cached := s.Day(ctx, date)

	return models.ScheduleView{
		Date:      date,
		Text:      entry.Text,
		Found:     entry.Found,
		Cached:    cached,
		Neighbors: NeighborDates(date),
	}
}

// Day возвращает запись кэша дня, вычисляя её при промахе
func (s *ScheduleService) Day(ctx context.Context, date time.Time) (models.DayEntry, bool) {
	date = s.Truncate(date)
	entry, cached := s.dayCache.GetOrCompute(ctx, date, s.computeDay)

	switch {
	case cached:
		s.logger.Info("already cached", "date", entry.Date)
	case entry.Found:
		s.logger.Info("created cache", "date", entry.Date, "events", len(entry.Events))
	default:
		s.logger.Info("created 404 cache", "date", entry.Date)
	}
	return entry, cached
}

func (s *ScheduleService) computeDay(ctx context.Context, date time.Time) (models.DayEntry, error) {
	bundle, err := s.api.FetchEventsForDate(ctx, date)
	if err != nil {
		return models.DayEntry{}, err
	}

	g := NewGraph(bundle, ResolverIndexes...)
	records, ok := g.Collection(models.CollectionEvents)
	if !ok {
		return models.DayEntry{}, fmt.Errorf("%w: bundle has no %s collection", ErrInconsistentData, models.CollectionEvents)
	}

	events := make([]models.Event, 0, len(records))
	for _, r := range records {
		if r != nil {
			events = append(events, models.EventFromRecord(r))
		}
	}

	text, resolved, err := s.renderer.Render(ctx, events, date, g)
	if err != nil {
		return models.DayEntry{}, err
	}
	return models.DayEntry{Text: text, Events: resolved}, nil
}

// StartChoices - даты, которые предлагаются пользователю начиная с сегодняшней
func (s *ScheduleService) StartChoices(now time.Time) []time.Time {
	today := s.Truncate(now)
	dates := make([]time.Time, 0, s.startDays)
	for i := 0; i < s.startDays; i++ {
		dates = append(dates, today.AddDate(0, 0, i))
	}
	return dates
}

// Truncate приводит момент времени к полуночи календарного дня в часовом поясе сервиса
func (s *ScheduleService) Truncate(t time.Time) time.Time {
	t = t.In(s.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.location)
}

func (s *ScheduleService) Location() *time.Location {
	return s.location
}

func (s *ScheduleService) InvalidateCache() {
	s.dayCache.Flush()
}

// NeighborDates: -1, +1, -7, +7 календарных дней
func NeighborDates(date time.Time) models.Neighbors {
	return models.Neighbors{
		Yesterday: date.AddDate(0, 0, -1),
		Tomorrow:  date.AddDate(0, 0, 1),
		WeekAgo:   date.AddDate(0, 0, -7),
		AfterWeek: date.AddDate(0, 0, 7),
	}
}
