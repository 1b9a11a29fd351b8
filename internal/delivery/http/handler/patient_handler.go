package handler

import (
	"encoding/json"
	"net/http"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// Register handles patient self-registration
// @Summary Register a new patient
// @Tags Patients
// @Accept json
// @Produce json
// @Param request body dto.RegisterPatientRequest true "Register Patient Request"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patients [post]
func (h *PatientHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientExists:
			response.Error(w, http.StatusConflict, "Email or phone already registered", nil)
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date of birth, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to register patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered successfully", patient)
}

// Me returns the authenticated patient's profile
// @Summary Get my profile
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/me [get]
func (h *PatientHandler) Me(w http.ResponseWriter, r *http.Request) {
	subject := subjectFromRequest(r)

	patient, err := h.patientUsecase.GetBySubject(r.Context(), subject)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", patient)
}

// MyAppointments lists the authenticated patient's appointment history
// @Summary List my appointments
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Param condition query string false "past or future"
// @Param doctor_name query string false "Doctor name substring"
// @Success 200 {object} response.Response
// @Router /patients/me/appointments [get]
func (h *PatientHandler) MyAppointments(w http.ResponseWriter, r *http.Request) {
	subject := subjectFromRequest(r)
	condition := r.URL.Query().Get("condition")
	doctorName := r.URL.Query().Get("doctor_name")

	appointments, err := h.patientUsecase.MyAppointments(r.Context(), subject, condition, doctorName)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCondition:
			response.Error(w, http.StatusBadRequest, "Invalid condition, use 'past' or 'future'", nil)
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to list appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}
