package services

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"
	"time"

	"schedule-bot/models"
)

// TimestampLayout - формат startsAt/endsAt, без часового пояса
const TimestampLayout = "2006-01-02T15:04:05"

const hourLayout = "15:04"

type TypeNamer interface {
	TypeName(ctx context.Context, typeID string) (string, error)
}

type ScheduleRenderer struct {
	resolver *EventResolver
	types    TypeNamer
	phrases  Phrases
	location *time.Location
}

func NewScheduleRenderer(resolver *EventResolver, types TypeNamer, phrases Phrases, location *time.Location) *ScheduleRenderer {
	if location == nil {
		location = time.Local
	}
	return &ScheduleRenderer{
		resolver: resolver,
		types:    types,
		phrases:  phrases,
		location: location,
	}
}

// Render сортирует события дня, разрешает их связи и формирует текст.
// Ошибка любого события прерывает рендер всего дня.
func (r *ScheduleRenderer) Render(ctx context.Context, events []models.Event, day time.Time, g *Graph) (string, []models.ResolvedEvent, error) {
	resolved, err := r.ResolveDay(ctx, events, g)
	if err != nil {
		return "", nil, err
	}
	return r.Format(day, resolved), resolved, nil
}

// ResolveDay возвращает события в хронологическом порядке (стабильно для равных начал)
func (r *ScheduleRenderer) ResolveDay(ctx context.Context, events []models.Event, g *Graph) ([]models.ResolvedEvent, error) {
	type timed struct {
		event      models.Event
		start, end time.Time
	}

	items := make([]timed, 0, len(events))
	for _, ev := range events {
		start, err := time.ParseInLocation(TimestampLayout, ev.StartsAt, r.location)
		if err != nil {
			return nil, fmt.Errorf("%w: event %s: %w: bad startsAt %q", ErrRenderFailure, ev.ID, ErrInconsistentData, ev.StartsAt)
		}
		end, err := time.ParseInLocation(TimestampLayout, ev.EndsAt, r.location)
		if err != nil {
			return nil, fmt.Errorf("%w: event %s: %w: bad endsAt %q", ErrRenderFailure, ev.ID, ErrInconsistentData, ev.EndsAt)
		}
		items = append(items, timed{event: ev, start: start, end: end})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].start.Before(items[j].start)
	})

	out := make([]models.ResolvedEvent, 0, len(items))
	for _, it := range items {
		resolved, err := r.resolver.Resolve(g, it.event)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRenderFailure, err)
		}

		typeName, err := r.types.TypeName(ctx, it.event.TypeID)
		if err != nil {
			return nil, fmt.Errorf("%w: event %s: %w", ErrRenderFailure, it.event.ID, err)
		}

		resolved.Start = it.start
		resolved.End = it.end
		resolved.TypeName = typeName
		out = append(out, resolved)
	}

	return out, nil
}

// Format собирает отчёт: заголовок и блоки событий через пустую строку
func (r *ScheduleRenderer) Format(day time.Time, events []models.ResolvedEvent) string {
	blocks := make([]string, 0, len(events)+1)
	header := r.phrases.Format(PhraseScheduleForDate, strconv.Itoa(day.Day()))
	blocks = append(blocks, "<b>"+header+"</b>")

	for i, ev := range events {
		blocks = append(blocks, r.formatEvent(i+1, ev))
	}

	return strings.Join(blocks, "\n\n")
}

func (r *ScheduleRenderer) formatEvent(n int, ev models.ResolvedEvent) string {
	lines := make([]string, 0, 5)
	lines = append(lines, fmt.Sprintf("🕒 %s-%s", ev.Start.Format(hourLayout), ev.End.Format(hourLayout)))

	title := html.EscapeString(ev.Realization.Name) + " / " + html.EscapeString(ev.Event.Name)
	if ev.Online {
		lines = append(lines, fmt.Sprintf("🖥️ %d. <b>[%s]</b> - %s", n, r.phrases.Get(PhraseOnlineEvent), title))
	} else {
		label := ev.Room.BuildingNameShort
		if label == "" {
			label = ev.Room.NameShort
		}
		lines = append(lines, fmt.Sprintf("📙 %d. <b>[%s]</b> - %s", n, html.EscapeString(label), title))
		if ev.Lecturer != nil {
			lines = append(lines, r.phrases.Get(PhraseLecturer)+" "+html.EscapeString(ev.Lecturer.FullName))
		}
	}

	lines = append(lines, fmt.Sprintf("📖 <i>(%s)</i>", html.EscapeString(ev.TypeName)))

	if ev.Online {
		lines = append(lines, "🌏 "+html.EscapeString(ev.Room.NameShort))
	} else {
		lines = append(lines, "🚪 "+html.EscapeString(ev.Room.NameShort))
	}

	return strings.Join(lines, "\n")
}
