package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mvclass/classroom-api/internal/core/domain"
)

const (
	noticeCollection     = "notices"
	noticeReadCollection = "notice_reads"
)

type NoticeRepository struct {
	notices *mongo.Collection
	reads   *mongo.Collection
}

func NewNoticeRepository(db *mongo.Database) *NoticeRepository {
	return &NoticeRepository{
		notices: db.Collection(noticeCollection),
		reads:   db.Collection(noticeReadCollection),
	}
}

type mongoNotice struct {
	ID          string `bson:"_id"`
	ClassroomID string `bson:"classroom_id"`
	Title       string `bson:"title"`
	Body        string `bson:"body,omitempty"`
	Pinned      bool   `bson:"pinned"`
	PublishAt   int64  `bson:"publish_at"`
	CreatedAt   int64  `bson:"created_at"`
}

type mongoNoticeRead struct {
	NoticeID      string `bson:"notice_id"`
	ClassroomID   string `bson:"classroom_id"`
	StudentNumber int    `bson:"student_number"`
	ReadAt        int64  `bson:"read_at"`
}

func (r *NoticeRepository) Insert(ctx context.Context, notice *domain.Notice) error {
	doc := mongoNotice{
		ID:          notice.ID,
		ClassroomID: notice.ClassroomID,
		Title:       notice.Title,
		Body:        notice.Body,
		Pinned:      notice.Pinned,
		PublishAt:   notice.PublishAt.Unix(),
		CreatedAt:   notice.CreatedAt.Unix(),
	}
	if _, err := r.notices.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}
	return nil
}

func (r *NoticeRepository) Get(ctx context.Context, id string) (*domain.Notice, error) {
	var mn mongoNotice
	if err := r.notices.FindOne(ctx, bson.M{"_id": id}).Decode(&mn); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNoticeNotFound
		}
		return nil, fmt.Errorf("find notice: %w", err)
	}
	notice := fromMongoNotice(mn)
	return &notice, nil
}

// ListPublished returns notices visible to students: publish_at in the
// past, pinned first, then newest publish first.
func (r *NoticeRepository) ListPublished(ctx context.Context, classroomID string, now time.Time) ([]domain.Notice, error) {
	filter := bson.M{"classroom_id": classroomID, "publish_at": bson.M{"$lte": now.Unix()}}
	opts := options.Find().SetSort(bson.D{{Key: "pinned", Value: -1}, {Key: "publish_at", Value: -1}})
	return r.list(ctx, filter, opts)
}

func (r *NoticeRepository) ListByClassroom(ctx context.Context, classroomID string) ([]domain.Notice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "publish_at", Value: -1}})
	return r.list(ctx, bson.M{"classroom_id": classroomID}, opts)
}

func (r *NoticeRepository) MarkRead(ctx context.Context, read *domain.NoticeRead) error {
	_, err := r.reads.UpdateOne(ctx,
		bson.M{"notice_id": read.NoticeID, "student_number": read.StudentNumber},
		bson.M{
			"$set":         bson.M{"classroom_id": read.ClassroomID},
			"$setOnInsert": bson.M{"read_at": read.ReadAt.Unix()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mark notice read: %w", err)
	}
	return nil
}

func (r *NoticeRepository) ReadsFor(ctx context.Context, classroomID string, studentNumber int) (map[string]time.Time, error) {
	cursor, err := r.reads.Find(ctx, bson.M{"classroom_id": classroomID, "student_number": studentNumber})
	if err != nil {
		return nil, fmt.Errorf("list notice reads: %w", err)
	}
	defer cursor.Close(ctx)

	out := make(map[string]time.Time)
	for cursor.Next(ctx) {
		var mr mongoNoticeRead
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode notice read: %w", err)
		}
		out[mr.NoticeID] = unixToTime(mr.ReadAt)
	}
	return out, cursor.Err()
}

func (r *NoticeRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Notice, error) {
	cursor, err := r.notices.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Notice
	for cursor.Next(ctx) {
		var mn mongoNotice
		if err := cursor.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode notice: %w", err)
		}
		out = append(out, fromMongoNotice(mn))
	}
	return out, cursor.Err()
}

func fromMongoNotice(mn mongoNotice) domain.Notice {
	return domain.Notice{
		ID:          mn.ID,
		ClassroomID: mn.ClassroomID,
		Title:       mn.Title,
		Body:        mn.Body,
		Pinned:      mn.Pinned,
		PublishAt:   unixToTime(mn.PublishAt),
		CreatedAt:   unixToTime(mn.CreatedAt),
	}
}
