package models

import "time"

type EventType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event - типизированное представление записи из коллекции events
type Event struct {
	ID       string
	Name     string
	TypeID   string
	StartsAt string
	EndsAt   string
	Record   *Record
}

func EventFromRecord(r *Record) Event {
	return Event{
		ID:       r.ID,
		Name:     r.String("name"),
		TypeID:   r.String("typeId"),
		StartsAt: r.String("startsAt"),
		EndsAt:   r.String("endsAt"),
		Record:   r,
	}
}

type Room struct {
	ID                string `json:"id"`
	NameShort         string `json:"nameShort"`
	BuildingNameShort string `json:"buildingNameShort"`
}

type Realization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Person struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

// OnlineReason - звено цепочки аудитории, на котором она оборвалась
type OnlineReason string

const (
	PhysicalRoom      OnlineReason = ""
	OnlineNoLocation  OnlineReason = "no-location"
	OnlineNoEventRoom OnlineReason = "no-event-room"
	OnlineNoRoom      OnlineReason = "no-room"
)

type ResolvedEvent struct {
	Event        Event
	Start        time.Time
	End          time.Time
	TypeName     string
	Online       bool
	OnlineReason OnlineReason
	Room         Room
	Realization  Realization
	Lecturer     *Person
}

// DayEntry - отрендеренный день, хранится в кэше вместо исходного Bundle
type DayEntry struct {
	Date   string
	Text   string
	Found  bool
	Events []ResolvedEvent
}

type Neighbors struct {
	Yesterday time.Time `json:"yesterday"`
	Tomorrow  time.Time `json:"tomorrow"`
	WeekAgo   time.Time `json:"weekAgo"`
	AfterWeek time.Time `json:"afterWeek"`
}

type ScheduleView struct {
	Date      time.Time
	Text      string
	Found     bool
	Cached    bool
	Neighbors Neighbors
}

// Button - кнопка inline-клавиатуры чата
type Button struct {
	Text string `json:"text"`
	Data string `json:"data"`
}

// CallbackData - полезная нагрузка кнопки
type CallbackData struct {
	Type string `json:"type,omitempty"`
	Date string `json:"date"`
}

type ChatUser struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

type CallbackRequest struct {
	Data string    `json:"data" binding:"required"`
	User *ChatUser `json:"user,omitempty"`
}

type ChatMessage struct {
	Text      string     `json:"text"`
	ParseMode string     `json:"parseMode"`
	Keyboard  [][]Button `json:"keyboard"`
	Found     *bool      `json:"found,omitempty"`
	Cached    *bool      `json:"cached,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
