package entity

import (
	"reflect"
	"testing"
)

func TestTimeListValueAndScan(t *testing.T) {
	original := TimeList{"09:00", "09:30", "14:00"}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var scanned TimeList
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if !reflect.DeepEqual(scanned, original) {
		t.Errorf("round trip = %v, want %v", scanned, original)
	}
}

func TestTimeListValueEmpty(t *testing.T) {
	var empty TimeList
	value, err := empty.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if value != nil {
		t.Errorf("empty list should store NULL, got %v", value)
	}
}

func TestTimeListScanNil(t *testing.T) {
	scanned := TimeList{"09:00"}
	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if scanned != nil {
		t.Errorf("Scan(nil) should reset the list, got %v", scanned)
	}
}

func TestTimeListScanString(t *testing.T) {
	var scanned TimeList
	if err := scanned.Scan(`["10:00","10:30"]`); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(scanned, TimeList{"10:00", "10:30"}) {
		t.Errorf("scanned = %v", scanned)
	}
}

func TestTimeListScanRejectsUnknownType(t *testing.T) {
	var scanned TimeList
	if err := scanned.Scan(42); err == nil {
		t.Error("expected error for non-bytes value")
	}
}
