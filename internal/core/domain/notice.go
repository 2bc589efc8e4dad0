package domain

import "time"

// Notice is an announcement a teacher publishes to their classroom.
// Students only see notices whose PublishAt is in the past.
type Notice struct {
	ID          string    `json:"id"`
	ClassroomID string    `json:"classroom_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body,omitempty"`
	Pinned      bool      `json:"pinned"`
	PublishAt   time.Time `json:"publish_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// NoticeRead marks a notice as read by one seat.
type NoticeRead struct {
	NoticeID      string    `json:"notice_id"`
	ClassroomID   string    `json:"classroom_id"`
	StudentNumber int       `json:"student_number"`
	ReadAt        time.Time `json:"read_at"`
}
