package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	FullName       string   `json:"full_name" validate:"required,min=2"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=6"`
	Specialty      string   `json:"specialty" validate:"required"`
	Phone          string   `json:"phone" validate:"omitempty"`
	AvailableTimes []string `json:"available_times" validate:"omitempty,dive,required"`
}

type UpdateDoctorRequest struct {
	FullName       string   `json:"full_name" validate:"omitempty,min=2"`
	Email          string   `json:"email" validate:"omitempty,email"`
	Password       string   `json:"password" validate:"omitempty,min=6"`
	Specialty      string   `json:"specialty" validate:"omitempty"`
	Phone          string   `json:"phone" validate:"omitempty"`
	AvailableTimes []string `json:"available_times" validate:"omitempty,dive,required"`
	IsActive       *bool    `json:"is_active" validate:"omitempty"`
}

// DoctorFilter carries the optional directory filter criteria. Period is
// "am" or "pm"; empty fields are ignored.
type DoctorFilter struct {
	Name      string `validate:"omitempty"`
	Specialty string `validate:"omitempty"`
	Period    string `validate:"omitempty,oneof=am pm"`
}

// Response DTOs

type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Specialty      string    `json:"specialty"`
	Phone          string    `json:"phone,omitempty"`
	IsActive       *bool     `json:"is_active"`
	AvailableTimes []string  `json:"available_times"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type AvailabilityResponse struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Slots    []string  `json:"slots"`
}
