package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Ключи фраз, которые использует ядро
const (
	PhraseSelectScheduleDate = "SELECT_SCHEDULE_DATE"
	PhraseScheduleForDate    = "SCHEDULE_FOR_DATE"
	PhraseLecturer           = "LECTURER"
	PhraseOnlineEvent        = "ONLINE_EVENT"
	PhraseEventsNotFound     = "EVENTS_NOT_FOUND"
)

var requiredPhrases = []string{
	PhraseSelectScheduleDate,
	PhraseScheduleForDate,
	PhraseLecturer,
	PhraseOnlineEvent,
	PhraseEventsNotFound,
}

// Phrases - статический словарь локализации, загружается один раз при старте
type Phrases map[string]string

func (p Phrases) Lookup(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// Get возвращает фразу или сам ключ, если фразы нет
func (p Phrases) Get(key string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return key
}

// Format подставляет аргументы вместо {0}, {1}, ...
func (p Phrases) Format(key string, args ...string) string {
	s := p.Get(key)
	for i, arg := range args {
		s = strings.ReplaceAll(s, "{"+strconv.Itoa(i)+"}", arg)
	}
	return s
}

func (p Phrases) validate() error {
	var missing []string
	for _, key := range requiredPhrases {
		if _, ok := p[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing phrases: %s", strings.Join(missing, ", "))
	}
	return nil
}

func ParsePhrases(data []byte) (Phrases, error) {
	var phrases Phrases
	if err := json.Unmarshal(data, &phrases); err != nil {
		return nil, fmt.Errorf("failed to decode phrases: %w", err)
	}
	if err := phrases.validate(); err != nil {
		return nil, err
	}
	return phrases, nil
}

func LoadPhrasesFile(path string) (Phrases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read phrases file: %w", err)
	}
	return ParsePhrases(data)
}

// ObjectDownloader - источник файла фраз в объектном хранилище
type ObjectDownloader interface {
	DownloadFile(ctx context.Context, bucket, objectPath string) ([]byte, error)
}

func LoadPhrasesObject(ctx context.Context, storage ObjectDownloader, bucket, objectPath string) (Phrases, error) {
	data, err := storage.DownloadFile(ctx, bucket, objectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to download phrases %s/%s: %w", bucket, objectPath, err)
	}
	return ParsePhrases(data)
}
