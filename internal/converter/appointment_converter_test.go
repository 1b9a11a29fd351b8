package converter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

func TestAppointmentToResponseDenormalizesPreloadedRelations(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()

	appointment := &entity.Appointment{
		ID:              uuid.New(),
		DoctorID:        doctorID,
		PatientID:       patientID,
		AppointmentTime: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		Status:          entity.StatusScheduled,
		Doctor: entity.Doctor{
			ID:        doctorID,
			FullName:  "Dr. Smith",
			Specialty: "Cardiology",
			Password:  "hashed-secret",
		},
		Patient: entity.Patient{
			ID:       patientID,
			FullName: "Alice",
			Email:    "alice@example.com",
			Phone:    "555-0100",
			Password: "hashed-secret",
		},
	}

	response := AppointmentToResponse(appointment)
	if response == nil {
		t.Fatal("response is nil")
	}
	if response.DoctorName != "Dr. Smith" || response.DoctorSpecialty != "Cardiology" {
		t.Errorf("doctor fields = %q/%q", response.DoctorName, response.DoctorSpecialty)
	}
	if response.PatientName != "Alice" || response.PatientEmail != "alice@example.com" {
		t.Errorf("patient fields = %q/%q", response.PatientName, response.PatientEmail)
	}
	if response.Status != "scheduled" {
		t.Errorf("status = %q, want scheduled", response.Status)
	}
}

func TestAppointmentResponseNeverCarriesCredentials(t *testing.T) {
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		DoctorID:  uuid.New(),
		PatientID: uuid.New(),
		Doctor:    entity.Doctor{ID: uuid.New(), Password: "doctor-hash"},
		Patient:   entity.Patient{ID: uuid.New(), Password: "patient-hash"},
	}

	payload, err := json.Marshal(AppointmentToResponse(appointment))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	body := string(payload)
	if strings.Contains(body, "hash") || strings.Contains(body, "password") {
		t.Errorf("serialized response leaks credentials: %s", body)
	}
}

func TestAppointmentToResponseSkipsUnloadedRelations(t *testing.T) {
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		DoctorID:  uuid.New(),
		PatientID: uuid.New(),
	}

	response := AppointmentToResponse(appointment)
	if response.DoctorName != "" || response.PatientName != "" {
		t.Errorf("expected empty display fields, got %q/%q", response.DoctorName, response.PatientName)
	}
}

func TestAppointmentToResponseNil(t *testing.T) {
	if AppointmentToResponse(nil) != nil {
		t.Error("nil appointment should convert to nil response")
	}
}
