package model

import "time"

// Event 结构体表示活动模型
type Event struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"` // ISO-8601，例如 "2025-06-01T10:00"
	Location    string    `json:"location"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedBy   UserRef   `json:"createdBy"`
	Attendees   []User    `json:"attendees,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// IsAttending 判断指定用户是否已报名
func (e *Event) IsAttending(userID int) bool {
	for _, u := range e.Attendees {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// EventInput 是创建或编辑活动的表单数据。
// Date 来自 datetime-local 输入框，格式为 "YYYY-MM-DDTHH:MM"，且必须在未来。
type EventInput struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Date        string `validate:"required,future_date"`
	Location    string `validate:"required"`
	CollegeID   int
	ImagePath   string // 本地图片文件路径，可选
}
