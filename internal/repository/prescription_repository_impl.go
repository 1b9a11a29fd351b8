package repository

import (
	"context"
	"errors"
	"time"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type prescriptionRepository struct {
	collection *mongo.Collection
}

func NewPrescriptionRepository(db *mongo.Database) domainRepo.PrescriptionRepository {
	return &prescriptionRepository{
		collection: db.Collection("prescriptions"),
	}
}

// Save upserts by appointment id so reissuing a prescription for the same
// appointment replaces the previous document.
func (r *prescriptionRepository) Save(ctx context.Context, prescription *entity.Prescription) error {
	now := time.Now().UTC()
	prescription.UpdatedAt = now
	if prescription.CreatedAt.IsZero() {
		prescription.CreatedAt = now
	}

	filter := bson.M{"appointment_id": prescription.AppointmentID}
	update := bson.M{
		"$set": bson.M{
			"doctor_id":   prescription.DoctorID,
			"patient_id":  prescription.PatientID,
			"diagnosis":   prescription.Diagnosis,
			"medications": prescription.Medications,
			"notes":       prescription.Notes,
			"updated_at":  prescription.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"appointment_id": prescription.AppointmentID,
			"created_at":     prescription.CreatedAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *prescriptionRepository) FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := r.collection.FindOne(ctx, bson.M{"appointment_id": appointmentID}).Decode(&prescription)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}
