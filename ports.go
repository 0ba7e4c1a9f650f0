package serial

import (
	"fmt"
	"strings"

	gobug "go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// allow tests to override external dependencies
var (
	getPortsList         = gobug.GetPortsList
	getDetailedPortsList = enumerator.GetDetailedPortsList
)

// PortInfo describes an enumerated serial port.
type PortInfo struct {
	Name         string `json:"name"`
	IsUSB        bool   `json:"usb"`
	VID          string `json:"vid,omitempty"`
	PID          string `json:"pid,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	Product      string `json:"product,omitempty"`
}

// Label is the menu text for the port.
func (pi PortInfo) Label() string {
	if !pi.IsUSB {
		return pi.Name
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (USB %s:%s", pi.Name, pi.VID, pi.PID)
	if pi.SerialNumber != "" {
		b.WriteString(" " + pi.SerialNumber)
	}
	b.WriteString(")")
	return b.String()
}

// AvailablePorts returns the identifiers of the serial ports currently present.
func AvailablePorts() ([]string, error) {
	ports, err := getPortsList()
	if err != nil {
		return nil, fmt.Errorf("listing ports: %w", err)
	}
	return ports, nil
}

// DetailedPorts returns the serial ports with USB metadata where the platform
// provides it. If the detailed enumerator fails, it falls back to the plain list.
func DetailedPorts() ([]PortInfo, error) {
	details, err := getDetailedPortsList()
	if err != nil {
		names, listErr := AvailablePorts()
		if listErr != nil {
			return nil, listErr
		}
		infos := make([]PortInfo, len(names))
		for i, n := range names {
			infos[i] = PortInfo{Name: n}
		}
		return infos, nil
	}

	infos := make([]PortInfo, 0, len(details))
	for _, d := range details {
		if d == nil {
			continue
		}
		infos = append(infos, PortInfo{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	return infos, nil
}

// CheckPort verifies that portName is one of the enumerated ports.
func CheckPort(portName string) error {
	// Security: Prevent path traversal attacks
	if strings.Contains(portName, "..") {
		return fmt.Errorf("invalid port name %q: contains path traversal", portName)
	}

	ports, err := AvailablePorts()
	if err != nil {
		return err
	}
	for _, port := range ports {
		if port == portName {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidPortName, portName)
}
