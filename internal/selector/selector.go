// Package selector asks the user which serial port and baud rate to monitor.
package selector

import (
	"errors"
	"fmt"
	"io"

	serial "github.com/Station-Manager/serialmon"
)

var (
	// ErrCancelled is returned when the user dismisses a menu.
	ErrCancelled = errors.New("selection cancelled")

	// ErrNotInteractive is returned when a menu is needed but stdin is not a terminal.
	ErrNotInteractive = errors.New("stdin is not a terminal")
)

// Chooser presents items as a single-choice menu with def preselected and
// returns the chosen index, or ErrCancelled.
type Chooser interface {
	Choose(label string, items []string, def int) (int, error)
}

// Selector runs the port and baud rate menus.
type Selector struct {
	Chooser Chooser

	// ListPorts enumerates the candidate ports. Defaults to serial.DetailedPorts.
	ListPorts func() ([]serial.PortInfo, error)

	// Out receives the confirmation of the chosen port.
	Out io.Writer
}

// ChoosePort lets the user pick one of the currently available ports and
// returns its identifier. The first port is preselected.
func (s *Selector) ChoosePort() (string, error) {
	list := s.ListPorts
	if list == nil {
		list = serial.DetailedPorts
	}
	ports, err := list()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", serial.ErrNoPorts
	}

	labels := make([]string, len(ports))
	for i, p := range ports {
		labels[i] = p.Label()
	}

	i, err := s.choose("Select port", labels, 0)
	if err != nil {
		return "", err
	}

	name := ports[i].Name
	if s.Out != nil {
		fmt.Fprintf(s.Out, "You chose: %s\n", name)
	}
	return name, nil
}

// ChooseBaud lets the user pick one of serial.BaudRates, preselecting
// serial.DefaultBaudRate.
func (s *Selector) ChooseBaud() (serial.BaudRate, error) {
	labels := serial.BaudRateLabels()
	i, err := s.choose("Select baud rate", labels, serial.DefaultBaudIndex)
	if err != nil {
		return 0, err
	}
	return serial.ParseBaudRate(labels[i]), nil
}

func (s *Selector) choose(label string, items []string, def int) (int, error) {
	if s.Chooser == nil {
		return -1, ErrNotInteractive
	}
	i, err := s.Chooser.Choose(label, items, def)
	if err != nil {
		return -1, err
	}
	if i < 0 || i >= len(items) {
		return -1, fmt.Errorf("%s: index %d out of range [0,%d)", label, i, len(items))
	}
	return i, nil
}
