package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"schedule-bot/models"
	"schedule-bot/services"
)

// Типы навигационных кнопок
const (
	NavYesterday = "yesterday"
	NavTomorrow  = "tomorrow"
	NavWeekAgo   = "week_ago"
	NavAfterWeek = "after_week"
)

func callbackData(navType string, date time.Time) string {
	data, _ := json.Marshal(models.CallbackData{Type: navType, Date: date.Format(services.DateKeyLayout)})
	return string(data)
}

// weekdayName берёт название дня недели из фраз (WEEKDAY_MONDAY, ...), иначе английское
func weekdayName(phrases services.Phrases, wd time.Weekday) string {
	if name, ok := phrases.Lookup("WEEKDAY_" + strings.ToUpper(wd.String())); ok {
		return name
	}
	return wd.String()
}

// monthShortName берёт сокращённое название месяца из фраз (MONTH_SHORT_JANUARY, ...)
func monthShortName(phrases services.Phrases, m time.Month) string {
	if name, ok := phrases.Lookup("MONTH_SHORT_" + strings.ToUpper(m.String())); ok {
		return name
	}
	return m.String()[:3]
}

func dayLabel(phrases services.Phrases, date time.Time) string {
	return date.Format("02") + " " + monthShortName(phrases, date.Month()) + " " + date.Format("2006")
}

func navLabel(phrases services.Phrases, icon string, date time.Time) string {
	return icon + " " + date.Format("02.01") + " " + weekdayName(phrases, date.Weekday())
}

// startKeyboard - по одной кнопке с датой в строке
func startKeyboard(phrases services.Phrases, dates []time.Time) [][]models.Button {
	rows := make([][]models.Button, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, []models.Button{{
			Text: "🗓️" + dayLabel(phrases, d),
			Data: callbackData("", d),
		}})
	}
	return rows
}

// navigationKeyboard - 2x2: вчера/завтра, неделя назад/через неделю
func navigationKeyboard(phrases services.Phrases, n models.Neighbors) [][]models.Button {
	return [][]models.Button{
		{
			{Text: navLabel(phrases, "⬅", n.Yesterday), Data: callbackData(NavYesterday, n.Yesterday)},
			{Text: navLabel(phrases, "➡️", n.Tomorrow), Data: callbackData(NavTomorrow, n.Tomorrow)},
		},
		{
			{Text: navLabel(phrases, "⏪", n.WeekAgo), Data: callbackData(NavWeekAgo, n.WeekAgo)},
			{Text: navLabel(phrases, "⏩", n.AfterWeek), Data: callbackData(NavAfterWeek, n.AfterWeek)},
		},
	}
}
