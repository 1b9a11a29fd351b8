package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"
)

type AppointmentHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
	validator       *validator.CustomValidator
}

func NewAppointmentHandler(scheduleUsecase usecase.ScheduleUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// Book handles appointment booking by a patient
// @Summary Book an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BookAppointmentRequest true "Book Appointment Request"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	subject := subjectFromRequest(r)
	appointment, err := h.scheduleUsecase.Book(r.Context(), subject, &req)
	if err != nil {
		h.writeScheduleError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// Update handles rescheduling by the owning patient
// @Summary Update an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentRequest true "Update Appointment Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id} [put]
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := uuidFromPath(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	subject := subjectFromRequest(r)
	appointment, err := h.scheduleUsecase.Update(r.Context(), subject, appointmentID, &req)
	if err != nil {
		h.writeScheduleError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

// Cancel handles cancellation by the owning patient
// @Summary Cancel an appointment
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := uuidFromPath(w, r, "id")
	if !ok {
		return
	}

	subject := subjectFromRequest(r)
	if err := h.scheduleUsecase.Cancel(r.Context(), subject, appointmentID); err != nil {
		h.writeScheduleError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

// ChangeStatus flips an appointment between scheduled and completed
// @Summary Change appointment status
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body dto.ChangeStatusRequest true "Change Status Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := uuidFromPath(w, r, "id")
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	status := entity.AppointmentStatus(req.Status)
	if err := h.scheduleUsecase.ChangeStatus(r.Context(), appointmentID, status); err != nil {
		h.writeScheduleError(w, err, "Failed to change appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", nil)
}

// DoctorDay lists the authenticated doctor's appointments for a date
// @Summary List my appointments for a day
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date in YYYY-MM-DD"
// @Param patient_name query string false "Patient name substring"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) DoctorDay(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		return
	}

	subject := subjectFromRequest(r)
	patientName := r.URL.Query().Get("patient_name")

	appointments, err := h.scheduleUsecase.GetDoctorDay(r.Context(), subject, date, patientName)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) writeScheduleError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrDoctorInvalid, usecase.ErrDoctorNotFound:
		response.Error(w, http.StatusBadRequest, "Invalid doctor", nil)
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrSlotUnavailable:
		response.Error(w, http.StatusBadRequest, "Requested slot is not available", nil)
	case usecase.ErrSlotTaken, usecase.ErrStaleAppointment:
		response.Conflict(w, "Slot was just taken, please pick another")
	case usecase.ErrNotOwner:
		response.Forbidden(w, "Appointment does not belong to you")
	case usecase.ErrInvalidStatus:
		response.Error(w, http.StatusBadRequest, "Invalid appointment status", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
