package entity

import (
	"reflect"
	"strings"
	"testing"
)

func TestAppointmentStatusValid(t *testing.T) {
	if !StatusScheduled.Valid() {
		t.Error("scheduled should be valid")
	}
	if !StatusCompleted.Valid() {
		t.Error("completed should be valid")
	}
	if AppointmentStatus(2).Valid() {
		t.Error("2 should not be a valid status")
	}
	if AppointmentStatus(-1).Valid() {
		t.Error("-1 should not be a valid status")
	}
}

// The unique index on (doctor_id, appointment_time) is what prevents
// double-booking; booking maps violations of this exact constraint name to a
// conflict. Pin the declaration so a tag edit cannot silently break either.
func TestAppointmentDoctorSlotUniqueIndex(t *testing.T) {
	const indexName = "idx_appointments_doctor_slot"

	appointmentType := reflect.TypeOf(Appointment{})
	for _, field := range []string{"DoctorID", "AppointmentTime"} {
		f, ok := appointmentType.FieldByName(field)
		if !ok {
			t.Fatalf("field %s missing", field)
		}
		if !strings.Contains(f.Tag.Get("gorm"), "uniqueIndex:"+indexName) {
			t.Errorf("%s gorm tag %q lacks uniqueIndex:%s", field, f.Tag.Get("gorm"), indexName)
		}
	}
}

func TestAppointmentStatusString(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   string
	}{
		{StatusScheduled, "scheduled"},
		{StatusCompleted, "completed"},
		{AppointmentStatus(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", int(tt.status), got, tt.want)
		}
	}
}
