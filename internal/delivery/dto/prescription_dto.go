package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type MedicationRequest struct {
	Name      string `json:"name" validate:"required"`
	Dosage    string `json:"dosage" validate:"required"`
	Frequency string `json:"frequency" validate:"required"`
	Duration  string `json:"duration" validate:"omitempty"`
}

type IssuePrescriptionRequest struct {
	AppointmentID uuid.UUID           `json:"appointment_id" validate:"required"`
	Diagnosis     string              `json:"diagnosis" validate:"required"`
	Medications   []MedicationRequest `json:"medications" validate:"required,min=1,dive"`
	Notes         string              `json:"notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type MedicationResponse struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration,omitempty"`
}

type PrescriptionResponse struct {
	ID            string               `json:"id"`
	AppointmentID uuid.UUID            `json:"appointment_id"`
	DoctorID      uuid.UUID            `json:"doctor_id"`
	PatientID     uuid.UUID            `json:"patient_id"`
	Diagnosis     string               `json:"diagnosis"`
	Medications   []MedicationResponse `json:"medications"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}
