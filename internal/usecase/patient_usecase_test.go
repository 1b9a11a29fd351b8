package usecase

import (
	"errors"
	"testing"

	"clinic-scheduler/internal/domain/entity"
)

func TestConditionToStatus(t *testing.T) {
	tests := []struct {
		condition string
		want      entity.AppointmentStatus
		wantErr   bool
	}{
		{"past", entity.StatusCompleted, false},
		{"future", entity.StatusScheduled, false},
		{"PAST", entity.StatusCompleted, false},
		{" future ", entity.StatusScheduled, false},
		{"yesterday", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := conditionToStatus(tt.condition)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidCondition) {
				t.Errorf("conditionToStatus(%q) error = %v, want ErrInvalidCondition", tt.condition, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("conditionToStatus(%q) unexpected error: %v", tt.condition, err)
			continue
		}
		if got != tt.want {
			t.Errorf("conditionToStatus(%q) = %v, want %v", tt.condition, got, tt.want)
		}
	}
}
