package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a patient account created at signup
type Patient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName    string    `gorm:"type:varchar(255);not null;index" json:"full_name"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex:idx_patients_email;not null" json:"email"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	Phone       string    `gorm:"type:varchar(20);uniqueIndex:idx_patients_phone" json:"phone,omitempty"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
