package handler

type joinRequest struct {
	ClassroomCode string `json:"classroomCode" validate:"required"`
	StudentNumber int    `json:"studentNumber" validate:"required,gte=1,lte=30"`
	StudentName   string `json:"studentName" validate:"required"`
}

type joinResponse struct {
	Success      bool   `json:"success"`
	RedirectPath string `json:"redirectPath"`
}

type sessionResponse struct {
	Session *sessionPayload `json:"session"`
}

type sessionPayload struct {
	ClassroomID   string `json:"classroomId"`
	ClassroomCode string `json:"classroomCode"`
	StudentNumber int    `json:"studentNumber"`
	StudentName   string `json:"studentName"`
}

type studentTodoItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	Done        bool    `json:"done"`
	DoneAt      *string `json:"doneAt,omitempty"`
}

type studentTodosResponse struct {
	Todos          []studentTodoItem `json:"todos"`
	CompletionRate float64           `json:"completionRate"`
}

type setDoneRequest struct {
	Done bool `json:"done"`
}

type studentNoticeItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Body      string  `json:"body,omitempty"`
	Pinned    bool    `json:"pinned"`
	PublishAt string  `json:"publishAt"`
	Read      bool    `json:"read"`
	ReadAt    *string `json:"readAt,omitempty"`
}
