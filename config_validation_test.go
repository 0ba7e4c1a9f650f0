package serial

import (
	"strings"
	"testing"
	"time"
)

func TestValidateConfig_ValidConfig(t *testing.T) {
	cfg := NewConfig("/dev/ttyUSB0", Baud115200)
	if err := ValidateConfig(&cfg); err != nil {
		t.Fatalf("expected valid config, got error: %v", err)
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	if err := ValidateConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestValidateConfig_EmptyPortName(t *testing.T) {
	cfg := NewConfig("", Baud9600)

	err := ValidateConfig(&cfg)
	if err == nil {
		t.Fatal("expected error for empty port name")
	}
	if !strings.Contains(err.Error(), "port name cannot be empty") {
		t.Fatalf("expected 'port name cannot be empty' error, got: %v", err)
	}
}

func TestValidateConfig_PathTraversal(t *testing.T) {
	cfg := NewConfig("/dev/../etc/passwd", Baud9600)

	err := ValidateConfig(&cfg)
	if err == nil || !strings.Contains(err.Error(), "path traversal") {
		t.Fatalf("expected path traversal error, got: %v", err)
	}
}

func TestValidateConfig_InvalidBaudRate(t *testing.T) {
	tests := []struct {
		baudRate BaudRate
		wantErr  bool
	}{
		{9600, false},   // Valid
		{115200, false}, // Valid
		{921600, false}, // Valid
		{1200, true},    // Not offered
		{12345, true},   // Invalid
		{0, true},       // Invalid
		{-9600, true},   // Invalid
	}

	for _, tt := range tests {
		cfg := NewConfig("COM1", tt.baudRate)

		err := ValidateConfig(&cfg)
		if (err != nil) != tt.wantErr {
			t.Fatalf("baudRate=%d: wantErr=%v, got=%v", tt.baudRate, tt.wantErr, err)
		}
		if tt.wantErr && !strings.Contains(err.Error(), "invalid baud rate") {
			t.Fatalf("baudRate=%d: expected 'invalid baud rate' error, got: %v", tt.baudRate, err)
		}
	}
}

func TestValidateConfig_Timing(t *testing.T) {
	cfg := NewConfig("COM1", Baud9600)
	cfg.ReadTimeout = 0
	cfg.ReadSize = 0
	cfg.GraceDelay = -time.Second

	err := ValidateConfig(&cfg)
	if err == nil {
		t.Fatal("expected errors for timing fields")
	}
	for _, want := range []string{"read timeout", "read size", "grace delay"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in error, got: %v", want, err)
		}
	}
}

func TestValidateConfig_FollowsBaudRates(t *testing.T) {
	for _, b := range BaudRates {
		cfg := NewConfig("COM1", b)
		if err := ValidateConfig(&cfg); err != nil {
			t.Fatalf("menu rate %d rejected: %v", b, err)
		}
	}
}
