package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mvclass/classroom-api/internal/core/domain"
)

func TestClassroomService_SelfHealsMissingClassroom(t *testing.T) {
	profiles := newStubProfileRepo()
	teachers := newStubTeacherRepo()
	classrooms := newStubClassroomRepo()
	seats := newStubSeatRepo()
	bootstrap := NewBootstrapService(profiles, teachers, classrooms, zerolog.Nop())
	svc := NewClassroomService(classrooms, seats, bootstrap, zerolog.Nop())

	// No classroom exists yet; the lookup must create one on the fly.
	classroom, err := svc.ClassroomFor(context.Background(), "t1", "t@school.kr")
	if err != nil {
		t.Fatalf("classroom for: %v", err)
	}
	if classroom == nil || classroom.TeacherID != "t1" || classroom.Code == "" {
		t.Fatalf("unexpected classroom: %+v", classroom)
	}

	// The healed classroom is stable across calls.
	again, err := svc.ClassroomFor(context.Background(), "t1", "t@school.kr")
	if err != nil {
		t.Fatalf("second classroom for: %v", err)
	}
	if again.ID != classroom.ID || again.Code != classroom.Code {
		t.Fatalf("self-heal created a different classroom: %+v vs %+v", again, classroom)
	}
}

func TestClassroomService_Students(t *testing.T) {
	classrooms := newStubClassroomRepo()
	if err := classrooms.Insert(context.Background(), &domain.Classroom{ID: "c1", TeacherID: "t1", Code: "AB1234"}); err != nil {
		t.Fatalf("seed classroom: %v", err)
	}
	seats := newStubSeatRepo()
	if err := seats.Reserve(context.Background(), "c1", 3, "민수", time.Hour); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := seats.Reserve(context.Background(), "c1", 7, "영희", time.Hour); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	svc := NewClassroomService(classrooms, seats, NewBootstrapService(newStubProfileRepo(), newStubTeacherRepo(), classrooms, zerolog.Nop()), zerolog.Nop())

	students, err := svc.Students(context.Background(), "t1")
	if err != nil {
		t.Fatalf("students: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 seats, got %d", len(students))
	}
	if students[0].StudentNumber != 3 || students[0].StudentName != "민수" {
		t.Fatalf("unexpected first seat: %+v", students[0])
	}
}
