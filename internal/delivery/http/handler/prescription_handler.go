package handler

import (
	"encoding/json"
	"net/http"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

// Issue handles prescription creation by the treating doctor
// @Summary Issue a prescription
// @Tags Prescriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.IssuePrescriptionRequest true "Issue Prescription Request"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /prescriptions [post]
func (h *PrescriptionHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req dto.IssuePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	subject := subjectFromRequest(r)
	prescription, err := h.prescriptionUsecase.Issue(r.Context(), subject, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrDoctorNotFound:
			response.Unauthorized(w, "Token does not resolve to a doctor")
		case usecase.ErrNotAppointmentDoctor:
			response.Forbidden(w, "Appointment belongs to another doctor")
		default:
			response.InternalServerError(w, "Failed to issue prescription")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Prescription issued successfully", prescription)
}

// GetByAppointment returns the prescription for an appointment
// @Summary Get prescription by appointment
// @Tags Prescriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /prescriptions/{id} [get]
func (h *PrescriptionHandler) GetByAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := uuidFromPath(w, r, "id")
	if !ok {
		return
	}

	subject := subjectFromRequest(r)
	prescription, err := h.prescriptionUsecase.GetByAppointment(r.Context(), subject, appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "Prescription not found")
		case usecase.ErrNotOwner:
			response.Forbidden(w, "Prescription does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get prescription")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription retrieved successfully", prescription)
}
