package serial

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.bug.st/serial/enumerator"
)

func stubPorts(t *testing.T, names []string, details []*enumerator.PortDetails, detailErr error) {
	t.Helper()
	origList, origDetails := getPortsList, getDetailedPortsList
	getPortsList = func() ([]string, error) { return names, nil }
	getDetailedPortsList = func() ([]*enumerator.PortDetails, error) { return details, detailErr }
	t.Cleanup(func() {
		getPortsList, getDetailedPortsList = origList, origDetails
	})
}

func TestAvailablePorts(t *testing.T) {
	stubPorts(t, []string{"/dev/ttyS0", "/dev/ttyUSB0"}, nil, nil)

	ports, err := AvailablePorts()
	if err != nil {
		t.Fatalf("AvailablePorts error: %v", err)
	}
	if !reflect.DeepEqual(ports, []string{"/dev/ttyS0", "/dev/ttyUSB0"}) {
		t.Fatalf("unexpected ports: %v", ports)
	}
}

func TestAvailablePortsError(t *testing.T) {
	orig := getPortsList
	getPortsList = func() ([]string, error) { return nil, errors.New("no sysfs") }
	t.Cleanup(func() { getPortsList = orig })

	_, err := AvailablePorts()
	if err == nil || !strings.Contains(err.Error(), "listing ports") {
		t.Fatalf("expected 'listing ports' error, got: %v", err)
	}
}

func TestDetailedPorts(t *testing.T) {
	stubPorts(t, nil, []*enumerator.PortDetails{
		{Name: "/dev/ttyS0"},
		nil,
		{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001", SerialNumber: "FT123", Product: "FT232R"},
	}, nil)

	ports, err := DetailedPorts()
	if err != nil {
		t.Fatalf("DetailedPorts error: %v", err)
	}
	if len(ports) != 2 {
		t.Fatalf("expected 2 ports, got %d", len(ports))
	}
	if got := ports[0].Label(); got != "/dev/ttyS0" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := ports[1].Label(); got != "/dev/ttyUSB0 (USB 0403:6001 FT123)" {
		t.Fatalf("unexpected label %q", got)
	}
	if ports[1].Product != "FT232R" {
		t.Fatalf("unexpected product %q", ports[1].Product)
	}
}

func TestDetailedPortsFallsBackToPlainList(t *testing.T) {
	stubPorts(t, []string{"COM3"}, nil, errors.New("enumerator unsupported"))

	ports, err := DetailedPorts()
	if err != nil {
		t.Fatalf("DetailedPorts error: %v", err)
	}
	if !reflect.DeepEqual(ports, []PortInfo{{Name: "COM3"}}) {
		t.Fatalf("unexpected ports: %+v", ports)
	}
}

func TestCheckPort(t *testing.T) {
	stubPorts(t, []string{"/dev/ttyACM0"}, nil, nil)

	if err := CheckPort("/dev/ttyACM0"); err != nil {
		t.Fatalf("expected port to be found, got: %v", err)
	}
	if err := CheckPort("/dev/ttyACM1"); !errors.Is(err, ErrInvalidPortName) {
		t.Fatalf("expected ErrInvalidPortName, got: %v", err)
	}
	if err := CheckPort("/dev/../dev/ttyACM0"); err == nil || !strings.Contains(err.Error(), "path traversal") {
		t.Fatalf("expected path traversal error, got: %v", err)
	}
}

func TestPortInfoLabelWithoutSerial(t *testing.T) {
	pi := PortInfo{Name: "/dev/cu.usbserial-1", IsUSB: true, VID: "10c4", PID: "ea60"}
	if got := pi.Label(); got != "/dev/cu.usbserial-1 (USB 10c4:ea60)" {
		t.Fatalf("unexpected label %q", got)
	}
}
