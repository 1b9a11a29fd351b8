package entity

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prescription is a document-store record keyed by appointment.
// It lives in MongoDB, outside the relational schema.
type Prescription struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppointmentID uuid.UUID          `bson:"appointment_id" json:"appointment_id"`
	DoctorID      uuid.UUID          `bson:"doctor_id" json:"doctor_id"`
	PatientID     uuid.UUID          `bson:"patient_id" json:"patient_id"`
	Diagnosis     string             `bson:"diagnosis" json:"diagnosis"`
	Medications   []Medication       `bson:"medications" json:"medications"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// Medication is one entry in a prescription's structured medication list
type Medication struct {
	Name      string `bson:"name" json:"name"`
	Dosage    string `bson:"dosage" json:"dosage"`
	Frequency string `bson:"frequency" json:"frequency"`
	Duration  string `bson:"duration,omitempty" json:"duration,omitempty"`
}
