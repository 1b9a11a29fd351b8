package repository

import (
	"errors"
	"time"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// Update performs a revision-guarded write. RowsAffected 0 means the row no
// longer exists or another writer bumped the revision first.
func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND revision = ?", appointment.ID, appointment.Revision).
		Updates(map[string]interface{}{
			"doctor_id":        appointment.DoctorID,
			"patient_id":       appointment.PatientID,
			"appointment_time": appointment.AppointmentTime,
			"status":           appointment.Status,
			"notes":            appointment.Notes,
			"revision":         appointment.Revision + 1,
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.Appointment{}, "id = ?", id).Error
}

func (r *appointmentRepository) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error {
	return db.Delete(&entity.Appointment{}, "doctor_id = ?", doctorID).Error
}

func (r *appointmentRepository) FindByDoctorAndRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").
		Where("doctor_id = ? AND appointment_time >= ? AND appointment_time < ?", doctorID, from, to).
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorAndRangeExcluding(db *gorm.DB, doctorID uuid.UUID, from, to time.Time, excludeID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("doctor_id = ? AND appointment_time >= ? AND appointment_time < ? AND id <> ?", doctorID, from, to, excludeID).
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorPatientNameAndRange(db *gorm.DB, doctorID uuid.UUID, patientName string, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Where("appointments.doctor_id = ? AND patients.full_name ILIKE ? AND appointments.appointment_time >= ? AND appointments.appointment_time < ?",
			doctorID, "%"+patientName+"%", from, to).
		Order("appointments.appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").
		Where("patient_id = ?", patientID).
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientIDAndStatus(db *gorm.DB, patientID uuid.UUID, status entity.AppointmentStatus) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").
		Where("patient_id = ? AND status = ?", patientID, status).
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorNameAndPatientID(db *gorm.DB, doctorName string, patientID uuid.UUID, status *entity.AppointmentStatus) ([]entity.Appointment, error) {
	query := db.Preload("Doctor").Preload("Patient").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Where("doctors.full_name ILIKE ? AND appointments.patient_id = ?", "%"+doctorName+"%", patientID)
	if status != nil {
		query = query.Where("appointments.status = ?", *status)
	}

	var appointments []entity.Appointment
	err := query.Order("appointments.appointment_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
