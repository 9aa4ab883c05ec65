package services

import (
	"fmt"
	"log/slog"

	"schedule-bot/models"
)

// ResolverIndexes - вторичные индексы, которые нужны EventResolver
var ResolverIndexes = []FieldIndex{
	{Collection: models.CollectionEventLocations, Field: "eventId"},
	{Collection: models.CollectionEventOrganizers, Field: "eventId"},
}

type EventResolver struct {
	onlinePlatform string
	logger         *slog.Logger
}

func NewEventResolver(onlinePlatform string, logger *slog.Logger) *EventResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventResolver{
		onlinePlatform: onlinePlatform,
		logger:         logger,
	}
}

// Resolve собирает аудиторию, реализацию курса и преподавателя события.
// Ошибкой считается только отсутствие реализации курса.
func (r *EventResolver) Resolve(g *Graph, ev models.Event) (models.ResolvedEvent, error) {
	resolved := models.ResolvedEvent{Event: ev}

	realization, err := r.realization(g, ev)
	if err != nil {
		return resolved, err
	}
	resolved.Realization = realization

	room, reason := r.room(g, ev.ID)
	resolved.Room = room
	resolved.OnlineReason = reason
	resolved.Online = reason != models.PhysicalRoom
	if resolved.Online {
		r.logger.Debug("event classified as online", "event_id", ev.ID, "reason", string(reason))
		return resolved, nil
	}

	if lecturer, ok := r.lecturer(g, ev.ID); ok {
		resolved.Lecturer = &lecturer
	} else {
		r.logger.Debug("lecturer not resolved", "event_id", ev.ID)
	}

	return resolved, nil
}

func (r *EventResolver) realization(g *Graph, ev models.Event) (models.Realization, error) {
	id, ok := g.ResolveLink(ev.Record, models.LinkRealization)
	if !ok {
		return models.Realization{}, fmt.Errorf("%w: event %s has no %s link", ErrInconsistentData, ev.ID, models.LinkRealization)
	}
	rec, ok := g.RecordByID(models.CollectionRealizations, id)
	if !ok {
		return models.Realization{}, fmt.Errorf("%w: event %s references missing realization %s", ErrInconsistentData, ev.ID, id)
	}
	return models.Realization{ID: rec.ID, Name: rec.String("name")}, nil
}

// room проходит цепочку event-locations -> event-rooms -> rooms.
// Вторым значением возвращается звено, на котором цепочка оборвалась.
func (r *EventResolver) room(g *Graph, eventID string) (models.Room, models.OnlineReason) {
	online := models.Room{NameShort: r.onlinePlatform}

	location, ok := g.FirstWhere(models.CollectionEventLocations, "eventId", eventID)
	if !ok {
		return online, models.OnlineNoLocation
	}

	eventRoom, ok := g.Follow(location, models.LinkEventRoom, models.CollectionEventRooms)
	if !ok {
		return online, models.OnlineNoEventRoom
	}

	room, ok := g.Follow(eventRoom, models.LinkRoom, models.CollectionRooms)
	if !ok {
		return online, models.OnlineNoRoom
	}

	return models.Room{
		ID:                room.ID,
		NameShort:         room.String("nameShort"),
		BuildingNameShort: room.String("building", "nameShort"),
	}, models.PhysicalRoom
}

// lecturer проходит цепочку event-organizers -> event-attendees -> persons
func (r *EventResolver) lecturer(g *Graph, eventID string) (models.Person, bool) {
	organizer, ok := g.FirstWhere(models.CollectionEventOrganizers, "eventId", eventID)
	if !ok {
		return models.Person{}, false
	}

	attendee, ok := g.Follow(organizer, models.LinkEventAttendee, models.CollectionEventAttendees)
	if !ok {
		return models.Person{}, false
	}

	person, ok := g.Follow(attendee, models.LinkPerson, models.CollectionPersons)
	if !ok {
		return models.Person{}, false
	}

	fullName := person.String("fullName")
	if fullName == "" {
		return models.Person{}, false
	}
	return models.Person{ID: person.ID, FullName: fullName}, true
}
