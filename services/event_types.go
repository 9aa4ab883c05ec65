package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const eventTypesKey = "event-types"

// EventTypeFetcher - часть upstream API, нужная справочнику типов
type EventTypeFetcher interface {
	FetchEventTypes(ctx context.Context) (map[string]string, error)
}

// EventTypeDirectory кэширует справочник типов событий: id -> название.
// Справочник загружается один раз и живёт ttl (0 - до конца процесса).
type EventTypeDirectory struct {
	fetcher EventTypeFetcher
	cache   *cache.Cache
	ttl     time.Duration
	group   singleflight.Group
	logger  *slog.Logger
}

func NewEventTypeDirectory(fetcher EventTypeFetcher, ttl time.Duration, logger *slog.Logger) *EventTypeDirectory {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &EventTypeDirectory{
		fetcher: fetcher,
		cache:   cache.New(ttl, time.Hour),
		ttl:     ttl,
		logger:  logger,
	}
}

// TypeName возвращает название типа. Неизвестный id возвращается как есть.
func (d *EventTypeDirectory) TypeName(ctx context.Context, typeID string) (string, error) {
	catalog, err := d.catalog(ctx)
	if err != nil {
		return "", err
	}

	name, ok := catalog[typeID]
	if !ok {
		d.logger.Warn("unknown event type", "type_id", typeID)
		return typeID, nil
	}
	return name, nil
}

func (d *EventTypeDirectory) catalog(ctx context.Context) (map[string]string, error) {
	if cached, found := d.cache.Get(eventTypesKey); found {
		return cached.(map[string]string), nil
	}

	v, err, _ := d.group.Do(eventTypesKey, func() (any, error) {
		if cached, found := d.cache.Get(eventTypesKey); found {
			return cached, nil
		}

		catalog, err := d.fetcher.FetchEventTypes(ctx)
		if err != nil {
			if !errors.Is(err, ErrUpstreamUnavailable) {
				err = fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
			}
			return nil, fmt.Errorf("failed to fetch event types: %w", err)
		}

		d.cache.Set(eventTypesKey, catalog, d.ttl)
		d.logger.Info("event types cached", "count", len(catalog))
		return catalog, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]string), nil
}
