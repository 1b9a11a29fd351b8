package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the lifecycle status of an appointment.
// Cancellation is modeled as row deletion, not a status value.
type AppointmentStatus int

const (
	StatusScheduled AppointmentStatus = 0
	StatusCompleted AppointmentStatus = 1
)

// Valid reports whether s is a known status code.
func (s AppointmentStatus) Valid() bool {
	return s == StatusScheduled || s == StatusCompleted
}

func (s AppointmentStatus) String() string {
	switch s {
	case StatusScheduled:
		return "scheduled"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Appointment represents a booked doctor slot.
//
// The unique index on (doctor_id, appointment_time) is the authoritative
// guard against double-booking: two concurrent inserts for the same slot
// cannot both commit, regardless of what the availability pre-check saw.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_appointments_doctor_slot,priority:1;index" json:"doctor_id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentTime time.Time         `gorm:"not null;uniqueIndex:idx_appointments_doctor_slot,priority:2" json:"appointment_time"`
	Status          AppointmentStatus `gorm:"type:smallint;not null;default:0;index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	Revision        int               `gorm:"not null;default:1" json:"revision"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if the appointment is still upcoming
func (a *Appointment) IsScheduled() bool {
	return a.Status == StatusScheduled
}

// Complete marks the appointment as completed
func (a *Appointment) Complete() {
	a.Status = StatusCompleted
}
