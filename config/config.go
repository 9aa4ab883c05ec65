package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	// Upstream API расписания
	EventsURL        string
	EventTypesURL    string
	AttendeePersonID string
	UserAgent        string
	Authorization    string
	Referer          string
	Cookie           string
	EventsPageSize   int
	UpstreamTimeout  time.Duration

	Timezone       string
	OnlinePlatform string // Название платформы для онлайн-занятий
	StartDays      int    // Сколько дат предлагать на старте

	// Фразы: локальный файл или объект в MinIO
	LocalesPath    string
	LocalesObject  string
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	DayCacheTTL      time.Duration
	NotFoundCacheTTL time.Duration
	EventTypesTTL    time.Duration

	CORSAllowedOrigins []string
}

func Load() *Config {
	pageSize, _ := strconv.Atoi(getEnv("EVENTS_PAGE_SIZE", "500"))
	timeoutSeconds, _ := strconv.Atoi(getEnv("UPSTREAM_TIMEOUT_SECONDS", "15"))
	startDays, _ := strconv.Atoi(getEnv("START_DAYS", "7"))
	dayCacheMinutes, _ := strconv.Atoi(getEnv("DAY_CACHE_TTL_MINUTES", "1440"))
	notFoundMinutes, _ := strconv.Atoi(getEnv("NOT_FOUND_CACHE_TTL_MINUTES", "1440"))
	eventTypesMinutes, _ := strconv.Atoi(getEnv("EVENT_TYPES_TTL_MINUTES", "0"))
	useSSL, _ := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	if pageSize <= 0 {
		pageSize = 500
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 15
	}
	if startDays <= 0 {
		startDays = 7
	}

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		EventsURL:        getEnv("EVENTS_URL", ""),
		EventTypesURL:    getEnv("EVENT_TYPES_URL", ""),
		AttendeePersonID: getEnv("ATTENDEE_PERSON_ID", ""),
		UserAgent:        getEnv("USER_AGENT_HEADER_VALUE", ""),
		Authorization:    getEnv("AUTHORIZATION_HEADER_VALUE", ""),
		Referer:          getEnv("REFERER_HEADER_VALUE", ""),
		Cookie:           getEnv("COOKIE_HEADER_VALUE", ""),
		EventsPageSize:   pageSize,
		UpstreamTimeout:  time.Duration(timeoutSeconds) * time.Second,

		Timezone:       getEnv("TIMEZONE", "Local"),
		OnlinePlatform: getEnv("ONLINE_PLATFORM", "Educon"),
		StartDays:      startDays,

		LocalesPath:    getEnv("LOCALES_PATH", "locales.json"),
		LocalesObject:  getEnv("LOCALES_OBJECT", ""),
		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "schedule-bot"),
		MinIOUseSSL:    useSSL,

		DayCacheTTL:      time.Duration(dayCacheMinutes) * time.Minute,
		NotFoundCacheTTL: time.Duration(notFoundMinutes) * time.Minute,
		EventTypesTTL:    time.Duration(eventTypesMinutes) * time.Minute,

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

// Validate проверяет обязательные параметры upstream API
func (c *Config) Validate() error {
	var errs []error
	if c.EventsURL == "" {
		errs = append(errs, errors.New("EVENTS_URL is required"))
	}
	if c.EventTypesURL == "" {
		errs = append(errs, errors.New("EVENT_TYPES_URL is required"))
	}
	if c.AttendeePersonID == "" {
		errs = append(errs, errors.New("ATTENDEE_PERSON_ID is required"))
	}
	if c.LocalesObject != "" && c.MinIOEndpoint == "" {
		errs = append(errs, errors.New("MINIO_ENDPOINT is required when LOCALES_OBJECT is set"))
	}
	return errors.Join(errs...)
}

// Location возвращает часовой пояс, в котором трактуются "наивные" времена upstream
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
