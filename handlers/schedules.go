package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"schedule-bot/models"
	"schedule-bot/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	exportService   *services.ExportService
	phrases         services.Phrases
	logger          *slog.Logger
	now             func() time.Time
}

func NewScheduleHandler(schedule *services.ScheduleService, export *services.ExportService, phrases services.Phrases, logger *slog.Logger) *ScheduleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleHandler{
		scheduleService: schedule,
		exportService:   export,
		phrases:         phrases,
		logger:          logger,
		now:             time.Now,
	}
}

// Start - ответ на команду старта: выбор из нескольких дат начиная с сегодня
func (h *ScheduleHandler) Start(c *gin.Context) {
	now := h.now().In(h.scheduleService.Location())
	dates := h.scheduleService.StartChoices(now)

	text := h.phrases.Format(services.PhraseSelectScheduleDate, now.Format("02")+" "+monthShortName(h.phrases, now.Month())+now.Format(" 2006 15:04"))

	h.logger.Info("started bot", "user", formatUser(chatUserFromHeaders(c)))

	c.JSON(http.StatusOK, models.ChatMessage{
		Text:      text,
		ParseMode: "HTML",
		Keyboard:  startKeyboard(h.phrases, dates),
	})
}

// Callback - нажатие кнопки с датой
func (h *ScheduleHandler) Callback(c *gin.Context) {
	var req models.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	var data models.CallbackData
	if err := json.Unmarshal([]byte(req.Data), &data); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid callback data",
			Message: err.Error(),
		})
		return
	}

	user := req.User
	if user == nil {
		user = chatUserFromHeaders(c)
	}

	h.show(c, data.Date, user, req.Data)
}

// GetSchedule - то же, что Callback, но дата передаётся в пути
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	h.show(c, c.Param("date"), chatUserFromHeaders(c), c.Request.URL.Path)
}

func (h *ScheduleHandler) show(c *gin.Context, rawDate string, user *models.ChatUser, action string) {
	date, err := h.parseDate(rawDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid date",
			Message: err.Error(),
		})
		return
	}

	view := h.scheduleService.ShowSchedule(c.Request.Context(), date)
	h.logger.Info("schedule shown", "user", formatUser(user), "action", action, "found", view.Found, "cached", view.Cached)

	c.JSON(http.StatusOK, models.ChatMessage{
		Text:      view.Text,
		ParseMode: "HTML",
		Keyboard:  navigationKeyboard(h.phrases, view.Neighbors),
		Found:     &view.Found,
		Cached:    &view.Cached,
	})
}

// ExportSchedule отдаёт день в виде XLSX
func (h *ScheduleHandler) ExportSchedule(c *gin.Context) {
	date, err := h.parseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid date",
			Message: err.Error(),
		})
		return
	}

	entry, _ := h.scheduleService.Day(c.Request.Context(), date)
	if !entry.Found {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "events not found",
			Message: entry.Text,
		})
		return
	}

	data, err := h.exportService.ExportDayXLSX(entry, h.phrases.Get(services.PhraseOnlineEvent))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to export schedule",
			Message: err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"schedule-%s.xlsx\"", entry.Date))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// InvalidateCache сбрасывает кэш дней
func (h *ScheduleHandler) InvalidateCache(c *gin.Context) {
	h.scheduleService.InvalidateCache()
	c.JSON(http.StatusOK, gin.H{
		"message": "cache invalidated successfully",
	})
}

func (h *ScheduleHandler) parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return time.ParseInLocation(services.DateKeyLayout, raw, h.scheduleService.Location())
}

func chatUserFromHeaders(c *gin.Context) *models.ChatUser {
	id, _ := strconv.ParseInt(c.GetHeader("X-Chat-User-Id"), 10, 64)
	name := c.GetHeader("X-Chat-User-Name")
	if id == 0 && name == "" {
		return nil
	}
	return &models.ChatUser{ID: id, FullName: name}
}

func formatUser(u *models.ChatUser) string {
	if u == nil {
		return "anonymous"
	}
	return strings.TrimSpace(fmt.Sprintf("%d :: %s", u.ID, u.FullName))
}
