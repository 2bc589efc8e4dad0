package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mvclass/classroom-api/internal/core/domain"
)

const (
	todoCollection       = "todos"
	todoStatusCollection = "todo_status"
)

type TodoRepository struct {
	todos    *mongo.Collection
	statuses *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{
		todos:    db.Collection(todoCollection),
		statuses: db.Collection(todoStatusCollection),
	}
}

type mongoTodo struct {
	ID             string `bson:"_id"`
	ClassroomID    string `bson:"classroom_id"`
	Title          string `bson:"title"`
	Description    string `bson:"description,omitempty"`
	DueDate        int64  `bson:"due_date,omitempty"`
	StudentNumbers []int  `bson:"student_numbers,omitempty"`
	CreatedAt      int64  `bson:"created_at"`
}

type mongoTodoStatus struct {
	TodoID        string `bson:"todo_id"`
	ClassroomID   string `bson:"classroom_id"`
	StudentNumber int    `bson:"student_number"`
	Done          bool   `bson:"done"`
	DoneAt        int64  `bson:"done_at,omitempty"`
}

func (r *TodoRepository) Insert(ctx context.Context, todo *domain.Todo) error {
	doc := mongoTodo{
		ID:             todo.ID,
		ClassroomID:    todo.ClassroomID,
		Title:          todo.Title,
		Description:    todo.Description,
		StudentNumbers: todo.StudentNumbers,
		CreatedAt:      todo.CreatedAt.Unix(),
	}
	if todo.DueDate != nil {
		doc.DueDate = todo.DueDate.Unix()
	}
	if _, err := r.todos.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) Get(ctx context.Context, id string) (*domain.Todo, error) {
	var mt mongoTodo
	if err := r.todos.FindOne(ctx, bson.M{"_id": id}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	todo := fromMongoTodo(mt)
	return &todo, nil
}

// ListByClassroom returns the classroom's todos, nearest due date first,
// newest first among undated ones.
func (r *TodoRepository) ListByClassroom(ctx context.Context, classroomID string) ([]domain.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}, {Key: "created_at", Value: -1}})
	cursor, err := r.todos.Find(ctx, bson.M{"classroom_id": classroomID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Todo
	for cursor.Next(ctx) {
		var mt mongoTodo
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode todo: %w", err)
		}
		out = append(out, fromMongoTodo(mt))
	}
	return out, cursor.Err()
}

func (r *TodoRepository) SetStatus(ctx context.Context, status *domain.TodoStatus) error {
	set := bson.M{
		"classroom_id": status.ClassroomID,
		"done":         status.Done,
	}
	if status.DoneAt != nil {
		set["done_at"] = status.DoneAt.Unix()
	} else {
		set["done_at"] = int64(0)
	}

	_, err := r.statuses.UpdateOne(ctx,
		bson.M{"todo_id": status.TodoID, "student_number": status.StudentNumber},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert todo status: %w", err)
	}
	return nil
}

func (r *TodoRepository) StatusesFor(ctx context.Context, classroomID string, studentNumber int) (map[string]domain.TodoStatus, error) {
	cursor, err := r.statuses.Find(ctx, bson.M{"classroom_id": classroomID, "student_number": studentNumber})
	if err != nil {
		return nil, fmt.Errorf("list todo statuses: %w", err)
	}
	defer cursor.Close(ctx)

	out := make(map[string]domain.TodoStatus)
	for cursor.Next(ctx) {
		var ms mongoTodoStatus
		if err := cursor.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode todo status: %w", err)
		}
		status := domain.TodoStatus{
			TodoID:        ms.TodoID,
			ClassroomID:   ms.ClassroomID,
			StudentNumber: ms.StudentNumber,
			Done:          ms.Done,
		}
		if ms.DoneAt > 0 {
			at := unixToTime(ms.DoneAt)
			status.DoneAt = &at
		}
		out[ms.TodoID] = status
	}
	return out, cursor.Err()
}

func fromMongoTodo(mt mongoTodo) domain.Todo {
	todo := domain.Todo{
		ID:             mt.ID,
		ClassroomID:    mt.ClassroomID,
		Title:          mt.Title,
		Description:    mt.Description,
		StudentNumbers: mt.StudentNumbers,
		CreatedAt:      unixToTime(mt.CreatedAt),
	}
	if mt.DueDate > 0 {
		due := unixToTime(mt.DueDate)
		todo.DueDate = &due
	}
	return todo
}
