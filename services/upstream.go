package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"schedule-bot/config"
	"schedule-bot/models"
)

// ScheduleAPI - upstream API расписания
type ScheduleAPI interface {
	EventTypeFetcher
	FetchEventsForDate(ctx context.Context, date time.Time) (models.Bundle, error)
}

type UpstreamService struct {
	client           *http.Client
	eventsURL        string
	eventTypesURL    string
	attendeePersonID string
	pageSize         int
	headers          http.Header
}

func NewUpstreamService(cfg *config.Config) *UpstreamService {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	setIfNotEmpty(headers, "User-Agent", cfg.UserAgent)
	setIfNotEmpty(headers, "Authorization", cfg.Authorization)
	setIfNotEmpty(headers, "Referer", cfg.Referer)
	setIfNotEmpty(headers, "Cookie", cfg.Cookie)

	return &UpstreamService{
		client: &http.Client{
			Timeout: cfg.UpstreamTimeout,
		},
		eventsURL:        cfg.EventsURL,
		eventTypesURL:    cfg.EventTypesURL,
		attendeePersonID: cfg.AttendeePersonID,
		pageSize:         cfg.EventsPageSize,
		headers:          headers,
	}
}

type eventsQuery struct {
	Size             int      `json:"size"`
	TimeMin          string   `json:"timeMin"`
	TimeMax          string   `json:"timeMax"`
	AttendeePersonID []string `json:"attendeePersonId"`
}

// FetchEventTypes загружает весь справочник типов событий
func (s *UpstreamService) FetchEventTypes(ctx context.Context) (map[string]string, error) {
	bundle, err := s.do(ctx, http.MethodGet, s.eventTypesURL, nil)
	if err != nil {
		return nil, err
	}

	records, ok := bundle[models.CollectionEventTypes]
	if !ok {
		return nil, fmt.Errorf("%w: response has no %s collection", ErrUpstreamUnavailable, models.CollectionEventTypes)
	}

	catalog := make(map[string]string, len(records))
	for _, r := range records {
		if r == nil || r.ID == "" {
			continue
		}
		catalog[r.ID] = r.String("name")
	}
	return catalog, nil
}

// FetchEventsForDate загружает Bundle событий за календарный день
func (s *UpstreamService) FetchEventsForDate(ctx context.Context, date time.Time) (models.Bundle, error) {
	day := date.Format(DateKeyLayout)
	body, err := json.Marshal(eventsQuery{
		Size:             s.pageSize,
		TimeMin:          day + "T00:00:00Z",
		TimeMax:          day + "T23:59:59Z",
		AttendeePersonID: []string{s.attendeePersonID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode events query: %w", err)
	}

	return s.do(ctx, http.MethodPost, s.eventsURL, body)
}

func (s *UpstreamService) do(ctx context.Context, method, url string, body []byte) (models.Bundle, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range s.headers {
		req.Header[key] = values
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUpstreamUnavailable, method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s %s returned status %d", ErrUpstreamUnavailable, method, url, resp.StatusCode)
	}

	var envelope models.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrUpstreamUnavailable, err)
	}
	if envelope.Embedded == nil {
		return nil, fmt.Errorf("%w: response has no _embedded", ErrUpstreamUnavailable)
	}
	return envelope.Embedded, nil
}

func setIfNotEmpty(h http.Header, key, value string) {
	if value != "" {
		h.Set(key, value)
	}
}
