package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mvclass/classroom-api/internal/core/domain"
)

// SeatStore tracks occupied student numbers per classroom.
// Key format: seat:<classroom_id>:<student_number>, value is the student
// name. Keys expire with the student session TTL, so an abandoned session
// frees its seat without any cleanup job.
type SeatStore struct {
	client *redis.Client
}

// NewSeatStore creates a SeatStore wrapping the given Redis client.
func NewSeatStore(client *redis.Client) *SeatStore {
	return &SeatStore{client: client}
}

// Reserve claims a seat atomically (SETNX). A live reservation by another
// name yields ErrSeatTaken; the same name re-joining refreshes the TTL.
func (s *SeatStore) Reserve(ctx context.Context, classroomID string, studentNumber int, studentName string, ttl time.Duration) error {
	key := s.key(classroomID, studentNumber)

	ok, err := s.client.SetNX(ctx, key, studentName, ttl).Result()
	if err != nil {
		return fmt.Errorf("reserve seat: %w", err)
	}
	if ok {
		return nil
	}

	current, err := s.client.Get(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("check seat holder: %w", err)
	}
	if current == studentName {
		// Re-join by the same student: refresh the expiry.
		if err := s.client.Set(ctx, key, studentName, ttl).Err(); err != nil {
			return fmt.Errorf("refresh seat: %w", err)
		}
		return nil
	}
	return domain.ErrSeatTaken
}

// Release frees a seat. Releasing a free seat is a no-op.
func (s *SeatStore) Release(ctx context.Context, classroomID string, studentNumber int) error {
	if err := s.client.Del(ctx, s.key(classroomID, studentNumber)).Err(); err != nil {
		return fmt.Errorf("release seat: %w", err)
	}
	return nil
}

// List returns the classroom's occupied seats in seat-number order.
func (s *SeatStore) List(ctx context.Context, classroomID string) ([]domain.Seat, error) {
	pattern := fmt.Sprintf("seat:%s:*", classroomID)

	var seats []domain.Seat
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		number, err := s.numberFromKey(key)
		if err != nil {
			continue
		}
		name, err := s.client.Get(ctx, key).Result()
		if err == redis.Nil {
			continue // expired between scan and get
		}
		if err != nil {
			return nil, fmt.Errorf("read seat: %w", err)
		}
		seats = append(seats, domain.Seat{StudentNumber: number, StudentName: name})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan seats: %w", err)
	}

	sort.Slice(seats, func(i, j int) bool { return seats[i].StudentNumber < seats[j].StudentNumber })
	return seats, nil
}

func (s *SeatStore) key(classroomID string, studentNumber int) string {
	return fmt.Sprintf("seat:%s:%d", classroomID, studentNumber)
}

func (s *SeatStore) numberFromKey(key string) (int, error) {
	idx := strings.LastIndexByte(key, ':')
	if idx < 0 {
		return 0, fmt.Errorf("malformed seat key %q", key)
	}
	return strconv.Atoi(key[idx+1:])
}
