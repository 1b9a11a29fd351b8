package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Doctor represents a doctor profile in the clinic directory
type Doctor struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName       string    `gorm:"type:varchar(255);not null;index" json:"full_name"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex:idx_doctors_email;not null" json:"email"`
	Password       string    `gorm:"type:text;not null" json:"-"`
	Specialty      string    `gorm:"type:varchar(100);not null;index" json:"specialty"`
	Phone          string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
	AvailableTimes TimeList  `gorm:"type:jsonb" json:"available_times"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// TimeList is the doctor's ordered list of bookable time-of-day labels
// ("09:00", "09:30", ...), stored as a jsonb array. Order is meaningful
// and preserved through availability computation.
type TimeList []string

// Value returns json value, implement driver.Valuer interface
func (t TimeList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan scan value into TimeList, implements sql.Scanner interface
func (t *TimeList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal jsonb value:", value))
	}

	var result []string
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*t = TimeList(result)
	return nil
}
