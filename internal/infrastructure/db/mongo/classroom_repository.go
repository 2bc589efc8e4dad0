package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mvclass/classroom-api/internal/core/domain"
)

const (
	teacherCollection   = "teachers"
	classroomCollection = "classrooms"
)

// TeacherRepository persists the teacher row the bootstrap ensures.
type TeacherRepository struct {
	coll *mongo.Collection
}

func NewTeacherRepository(db *mongo.Database) *TeacherRepository {
	return &TeacherRepository{coll: db.Collection(teacherCollection)}
}

// Ensure upserts by id, so repeated bootstrap runs and concurrent logins
// all converge on one row.
func (r *TeacherRepository) Ensure(ctx context.Context, userID, email string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"email": email}, "$setOnInsert": bson.M{"created_at": time.Now().Unix()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert teacher: %w", err)
	}
	return nil
}

// ClassroomRepository persists classrooms. The unique index on teacher_id
// (see EnsureIndexes) is what makes Insert safe under concurrent first
// logins.
type ClassroomRepository struct {
	coll *mongo.Collection
}

func NewClassroomRepository(db *mongo.Database) *ClassroomRepository {
	return &ClassroomRepository{coll: db.Collection(classroomCollection)}
}

type mongoClassroom struct {
	ID        string `bson:"_id"`
	TeacherID string `bson:"teacher_id"`
	Code      string `bson:"code"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *ClassroomRepository) Insert(ctx context.Context, classroom *domain.Classroom) error {
	if classroom.ID == "" {
		classroom.ID = uuid.NewString()
	}
	if classroom.CreatedAt.IsZero() {
		classroom.CreatedAt = time.Now().UTC()
	}

	doc := mongoClassroom{
		ID:        classroom.ID,
		TeacherID: classroom.TeacherID,
		Code:      classroom.Code,
		CreatedAt: classroom.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrClassroomExists
		}
		return fmt.Errorf("insert classroom: %w", err)
	}
	return nil
}

func (r *ClassroomRepository) FindByTeacher(ctx context.Context, teacherID string) (*domain.Classroom, error) {
	return r.findOne(ctx, bson.M{"teacher_id": teacherID})
}

func (r *ClassroomRepository) FindByCode(ctx context.Context, code string) (*domain.Classroom, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *ClassroomRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"code": code}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count classroom code: %w", err)
	}
	return n > 0, nil
}

func (r *ClassroomRepository) findOne(ctx context.Context, filter bson.M) (*domain.Classroom, error) {
	var mc mongoClassroom
	if err := r.coll.FindOne(ctx, filter).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClassroomNotFound
		}
		return nil, fmt.Errorf("find classroom: %w", err)
	}

	return &domain.Classroom{
		ID:        mc.ID,
		TeacherID: mc.TeacherID,
		Code:      mc.Code,
		CreatedAt: unixToTime(mc.CreatedAt),
	}, nil
}
