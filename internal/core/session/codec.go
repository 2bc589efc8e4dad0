// Package session encodes a student's classroom membership into an opaque
// cookie value and back.
//
// The encoding is base64 over canonical JSON with no signature. The payload
// is a low-sensitivity join fact, not a credential; if tamper-proofing ever
// becomes a requirement an HMAC can wrap Encode/Decode without touching
// callers.
package session

import (
	"encoding/base64"
	"encoding/json"

	"github.com/mvclass/classroom-api/internal/core/domain"
)

// CookieName is the fixed cookie the encoded session travels in.
const CookieName = "mvclass_student_session"

// Encode serializes the session to its cookie form.
func Encode(s domain.StudentSession) string {
	raw, err := json.Marshal(s)
	if err != nil {
		// StudentSession contains only strings and an int; Marshal cannot fail.
		return ""
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// Decode reverses Encode. It returns nil for any malformed input: empty
// string, truncated base64, non-JSON payloads, wrong field types, missing
// fields. Callers must treat nil exactly like "no session", never as an
// error: a garbage cookie and an absent cookie are the same state.
func Decode(raw string) *domain.StudentSession {
	if raw == "" {
		return nil
	}
	buf, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	// Decode into a loose shape first so a wrong-typed field surfaces as a
	// nil rather than a partially filled session.
	var fields struct {
		ClassroomID   *string `json:"classroomId"`
		ClassroomCode *string `json:"classroomCode"`
		StudentNumber *int    `json:"studentNumber"`
		StudentName   *string `json:"studentName"`
	}
	if err := json.Unmarshal(buf, &fields); err != nil {
		return nil
	}
	if fields.ClassroomID == nil || fields.ClassroomCode == nil ||
		fields.StudentNumber == nil || fields.StudentName == nil {
		return nil
	}

	return &domain.StudentSession{
		ClassroomID:   *fields.ClassroomID,
		ClassroomCode: *fields.ClassroomCode,
		StudentNumber: *fields.StudentNumber,
		StudentName:   *fields.StudentName,
	}
}
