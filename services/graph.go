package services

import "schedule-bot/models"

// FieldIndex объявляет вторичный индекс коллекции по полю-внешнему ключу
type FieldIndex struct {
	Collection string
	Field      string
}

type fieldKey struct {
	collection string
	field      string
}

// Graph - индексированное представление Bundle, строится один раз на день
type Graph struct {
	bundle    models.Bundle
	byID      map[string]map[string]*models.Record
	secondary map[fieldKey]map[string][]*models.Record
}

func NewGraph(bundle models.Bundle, indexes ...FieldIndex) *Graph {
	g := &Graph{
		bundle:    bundle,
		byID:      make(map[string]map[string]*models.Record, len(bundle)),
		secondary: make(map[fieldKey]map[string][]*models.Record, len(indexes)),
	}

	for collection, records := range bundle {
		ids := make(map[string]*models.Record, len(records))
		for _, r := range records {
			if r == nil || r.ID == "" {
				continue
			}
			// При дубликатах побеждает первая запись
			if _, exists := ids[r.ID]; !exists {
				ids[r.ID] = r
			}
		}
		g.byID[collection] = ids
	}

	for _, idx := range indexes {
		key := fieldKey{collection: idx.Collection, field: idx.Field}
		values := make(map[string][]*models.Record)
		for _, r := range bundle[idx.Collection] {
			if r == nil {
				continue
			}
			v := r.String(idx.Field)
			values[v] = append(values[v], r)
		}
		g.secondary[key] = values
	}

	return g
}

// Collection возвращает записи коллекции в исходном порядке
func (g *Graph) Collection(name string) ([]*models.Record, bool) {
	records, ok := g.bundle[name]
	return records, ok
}

func (g *Graph) RecordByID(collection, id string) (*models.Record, bool) {
	ids, ok := g.byID[collection]
	if !ok {
		return nil, false
	}
	r, ok := ids[id]
	return r, ok
}

// RecordsWhere возвращает записи, у которых field == value, в исходном порядке
func (g *Graph) RecordsWhere(collection, field, value string) []*models.Record {
	if values, ok := g.secondary[fieldKey{collection: collection, field: field}]; ok {
		return values[value]
	}

	var out []*models.Record
	for _, r := range g.bundle[collection] {
		if r != nil && r.String(field) == value {
			out = append(out, r)
		}
	}
	return out
}

// FirstWhere - RecordsWhere для вызывающих, которые ожидают единственное совпадение
func (g *Graph) FirstWhere(collection, field, value string) (*models.Record, bool) {
	records := g.RecordsWhere(collection, field, value)
	if len(records) == 0 {
		return nil, false
	}
	return records[0], true
}

// ResolveLink превращает ссылку записи в голый идентификатор
func (g *Graph) ResolveLink(r *models.Record, linkName string) (string, bool) {
	href, ok := r.Href(linkName)
	if !ok {
		return "", false
	}
	id := models.IDFromHref(href)
	return id, id != ""
}

// Follow разрешает ссылку и ищет запись в целевой коллекции
func (g *Graph) Follow(r *models.Record, linkName, collection string) (*models.Record, bool) {
	id, ok := g.ResolveLink(r, linkName)
	if !ok {
		return nil, false
	}
	return g.RecordByID(collection, id)
}
