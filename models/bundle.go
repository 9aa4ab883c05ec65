package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Имена коллекций в ответе API расписания
const (
	CollectionEvents          = "events"
	CollectionEventTypes      = "event-types"
	CollectionEventLocations  = "event-locations"
	CollectionEventRooms      = "event-rooms"
	CollectionRooms           = "rooms"
	CollectionRealizations    = "course-unit-realizations"
	CollectionEventOrganizers = "event-organizers"
	CollectionEventAttendees  = "event-attendees"
	CollectionPersons         = "persons"
)

// Имена ссылок в _links
const (
	LinkRealization   = "course-unit-realization"
	LinkEventRoom     = "event-rooms"
	LinkRoom          = "room"
	LinkEventAttendee = "event-attendees"
	LinkPerson        = "person"
)

// Bundle - содержимое _embedded: коллекция -> записи в исходном порядке
type Bundle map[string][]*Record

type Envelope struct {
	Embedded Bundle `json:"_embedded"`
}

type Link struct {
	Href string `json:"href"`
}

// LinkSet принимает как одиночный объект {"href": ...}, так и массив
type LinkSet []Link

func (l *LinkSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var links []Link
		if err := json.Unmarshal(data, &links); err != nil {
			return err
		}
		*l = links
		return nil
	}

	var link Link
	if err := json.Unmarshal(data, &link); err != nil {
		return err
	}
	*l = LinkSet{link}
	return nil
}

// Record - плоская запись коллекции
type Record struct {
	ID     string
	Fields map[string]any
	Links  map[string]LinkSet
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}

	r.Fields = make(map[string]any, len(raw))
	r.Links = make(map[string]LinkSet)

	if links, ok := raw["_links"]; ok {
		if err := json.Unmarshal(links, &r.Links); err != nil {
			return fmt.Errorf("failed to decode record links: %w", err)
		}
		delete(raw, "_links")
	}

	for key, value := range raw {
		// UseNumber сохраняет числовые id без потери точности
		dec := json.NewDecoder(bytes.NewReader(value))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("failed to decode field %q: %w", key, err)
		}
		r.Fields[key] = v
	}

	r.ID = r.String("id")
	return nil
}

// String возвращает строковое значение поля; path позволяет спуститься во вложенный объект
func (r *Record) String(path ...string) string {
	if r == nil || len(path) == 0 {
		return ""
	}

	var current any = r.Fields
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current, ok = obj[key]
		if !ok {
			return ""
		}
	}

	switch v := current.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Href возвращает первую ссылку с данным именем
func (r *Record) Href(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	links, ok := r.Links[name]
	if !ok || len(links) == 0 || links[0].Href == "" {
		return "", false
	}
	return links[0].Href, true
}

// IDFromHref извлекает идентификатор из относительной ссылки вида "/<id>"
func IDFromHref(href string) string {
	href = strings.TrimRight(strings.TrimSpace(href), "/")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		href = href[i+1:]
	}
	return href
}
