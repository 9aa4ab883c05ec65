package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"schedule-bot/models"
)

// DateKeyLayout - ключ кэша дня, только дата
const DateKeyLayout = "2006-01-02"

type ComputeFunc func(ctx context.Context, date time.Time) (models.DayEntry, error)

// DayCache хранит отрендеренные дни, включая отрицательный результат.
// Вычисление для одной даты выполняется не более одного раза одновременно.
type DayCache struct {
	cache       *cache.Cache
	group       singleflight.Group
	ttl         time.Duration
	notFoundTTL time.Duration
	notFound    string
	logger      *slog.Logger
}

// NewDayCache: ttl и notFoundTTL <= 0 означают хранение до конца процесса
func NewDayCache(ttl, notFoundTTL time.Duration, notFoundText string, logger *slog.Logger) *DayCache {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	if notFoundTTL <= 0 {
		notFoundTTL = cache.NoExpiration
	}

	cleanup := ttl
	if notFoundTTL > 0 && (cleanup <= 0 || notFoundTTL < cleanup) {
		cleanup = notFoundTTL
	}
	if cleanup <= 0 {
		cleanup = time.Hour
	}

	return &DayCache{
		cache:       cache.New(ttl, cleanup),
		ttl:         ttl,
		notFoundTTL: notFoundTTL,
		notFound:    notFoundText,
		logger:      logger,
	}
}

// GetOrCompute возвращает запись дня и признак попадания в кэш
func (c *DayCache) GetOrCompute(ctx context.Context, date time.Time, compute ComputeFunc) (models.DayEntry, bool) {
	key := date.Format(DateKeyLayout)

	if cached, found := c.cache.Get(key); found {
		return cached.(models.DayEntry), true
	}

	computed := false
	v, _, _ := c.group.Do(key, func() (any, error) {
		if cached, found := c.cache.Get(key); found {
			return cached, nil
		}

		computed = true
		// Отмена запроса клиентом не должна кэшировать отрицательный результат
		entry, err := compute(context.WithoutCancel(ctx), date)
		if err != nil {
			c.logger.Error("failed to compute day", "date", key, "err", err)
			entry = models.DayEntry{Date: key, Text: c.notFound, Found: false}
			c.cache.Set(key, entry, c.notFoundTTL)
			return entry, nil
		}

		entry.Date = key
		entry.Found = true
		c.cache.Set(key, entry, c.ttl)
		return entry, nil
	})

	return v.(models.DayEntry), !computed
}

func (c *DayCache) Get(date time.Time) (models.DayEntry, bool) {
	cached, found := c.cache.Get(date.Format(DateKeyLayout))
	if !found {
		return models.DayEntry{}, false
	}
	return cached.(models.DayEntry), true
}

func (c *DayCache) Delete(date time.Time) {
	c.cache.Delete(date.Format(DateKeyLayout))
}

func (c *DayCache) Flush() {
	c.cache.Flush()
}

func (c *DayCache) Len() int {
	return c.cache.ItemCount()
}
