package domain

import "time"

// Todo is a task a teacher assigns to their classroom. When StudentNumbers
// is empty the todo targets every seat in the classroom.
type Todo struct {
	ID             string     `json:"id"`
	ClassroomID    string     `json:"classroom_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	StudentNumbers []int      `json:"student_numbers,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TodoStatus records one student's completion of one todo.
type TodoStatus struct {
	TodoID        string     `json:"todo_id"`
	ClassroomID   string     `json:"classroom_id"`
	StudentNumber int        `json:"student_number"`
	Done          bool       `json:"done"`
	DoneAt        *time.Time `json:"done_at,omitempty"`
}

// AppliesTo reports whether the todo targets the given seat.
func (t *Todo) AppliesTo(studentNumber int) bool {
	if len(t.StudentNumbers) == 0 {
		return true
	}
	for _, n := range t.StudentNumbers {
		if n == studentNumber {
			return true
		}
	}
	return false
}
