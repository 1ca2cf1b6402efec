package mockapi

import (
	"net/http"
	"strconv"

	"alumni-client/internal/model"

	"github.com/gin-gonic/gin"
)

// parseEventForm 解析活动的多部分表单。
// date 和 time 是两个独立部分，拼回 "YYYY-MM-DDTHH:MM" 存储。
func parseEventForm(c *gin.Context) (*model.Event, bool) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		respondError(c, http.StatusBadRequest, "cannot parse form data")
		return nil, false
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	date := c.PostForm("date")
	timePart := c.PostForm("time")
	location := c.PostForm("location")
	if title == "" || date == "" || timePart == "" || location == "" {
		respondError(c, http.StatusBadRequest, "title, date, time and location are required")
		return nil, false
	}

	event := &model.Event{
		Title:       title,
		Description: description,
		Date:        date + "T" + timePart,
		Location:    location,
	}

	// 图片只记录文件名，桩后端不落盘
	if file, err := c.FormFile("imageFile"); err == nil {
		event.ImageURL = "/uploads/events/" + file.Filename
	}
	return event, true
}

func (s *Server) handleListEvents(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListEvents())
}

func (s *Server) handleGetEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid event id")
		return
	}
	event, ok := s.store.GetEvent(id)
	if !ok {
		respondError(c, http.StatusNotFound, "event not found")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) handleCreateEvent(c *gin.Context) {
	event, ok := parseEventForm(c)
	if !ok {
		return
	}

	userID := c.GetInt("user_id")
	creator, _ := s.store.GetUser(userID)
	if creator != nil {
		event.CreatedBy = model.UserRef{ID: creator.ID, Name: creator.Name}
	}

	c.JSON(http.StatusCreated, s.store.CreateEvent(event))
}

func (s *Server) handleUpdateEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid event id")
		return
	}
	existing, ok := s.store.GetEvent(id)
	if !ok {
		respondError(c, http.StatusNotFound, "event not found")
		return
	}

	// 只有创建者或管理员可以编辑
	userID := c.GetInt("user_id")
	user, _ := s.store.GetUser(userID)
	if existing.CreatedBy.ID != userID && !user.IsAdmin() {
		respondError(c, http.StatusForbidden, "only the creator can edit this event")
		return
	}

	input, ok := parseEventForm(c)
	if !ok {
		return
	}
	updated, _ := s.store.UpdateEvent(id, input)
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid event id")
		return
	}
	existing, ok := s.store.GetEvent(id)
	if !ok {
		respondError(c, http.StatusNotFound, "event not found")
		return
	}

	userID := c.GetInt("user_id")
	user, _ := s.store.GetUser(userID)
	if existing.CreatedBy.ID != userID && !user.IsAdmin() {
		respondError(c, http.StatusForbidden, "only the creator can delete this event")
		return
	}

	s.store.DeleteEvent(id)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleJoinEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid event id")
		return
	}
	if !s.store.JoinEvent(id, c.GetInt("user_id")) {
		respondError(c, http.StatusNotFound, "event not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleLeaveEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid event id")
		return
	}
	if !s.store.LeaveEvent(id, c.GetInt("user_id")) {
		respondError(c, http.StatusNotFound, "event not found")
		return
	}
	c.Status(http.StatusNoContent)
}
