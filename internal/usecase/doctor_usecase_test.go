package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsDuplicateKeyErrorMapsSlotConflict(t *testing.T) {
	conflict := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_appointments_doctor_slot",
	}

	if !isDuplicateKeyError(conflict, "idx_appointments_doctor_slot") {
		t.Error("unique violation on the slot index should be a duplicate-key error")
	}

	// gorm returns driver errors wrapped; detection must survive wrapping.
	wrapped := fmt.Errorf("create appointment: %w", conflict)
	if !isDuplicateKeyError(wrapped, "idx_appointments_doctor_slot") {
		t.Error("wrapped unique violation should still be detected")
	}
}

func TestIsDuplicateKeyErrorIgnoresOtherConstraints(t *testing.T) {
	emailConflict := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_doctors_email",
	}

	if isDuplicateKeyError(emailConflict, "idx_appointments_doctor_slot") {
		t.Error("a violation on another constraint must not map to a slot conflict")
	}
	if !isDuplicateKeyError(emailConflict, "idx_doctors_email") {
		t.Error("email constraint should match its own name")
	}
}

func TestIsDuplicateKeyErrorIgnoresOtherCodes(t *testing.T) {
	fkViolation := &pgconn.PgError{
		Code:           "23503",
		ConstraintName: "idx_appointments_doctor_slot",
	}
	if isDuplicateKeyError(fkViolation, "idx_appointments_doctor_slot") {
		t.Error("a foreign-key violation is not a duplicate key")
	}

	if isDuplicateKeyError(errors.New("connection reset"), "idx_appointments_doctor_slot") {
		t.Error("a plain error is not a duplicate key")
	}
}

func TestIsForeignKeyError(t *testing.T) {
	fkViolation := &pgconn.PgError{
		Code:           "23503",
		ConstraintName: "fk_appointments_doctor",
	}

	if !isForeignKeyError(fkViolation, "doctor") {
		t.Error("foreign-key violation naming the doctor should be detected")
	}
	if !isForeignKeyError(fmt.Errorf("create: %w", fkViolation), "doctor") {
		t.Error("wrapped foreign-key violation should still be detected")
	}
	if isForeignKeyError(fkViolation, "patient") {
		t.Error("constraint for another relation must not match")
	}

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "fk_appointments_doctor"}
	if isForeignKeyError(unique, "doctor") {
		t.Error("a unique violation is not a foreign-key violation")
	}
}
