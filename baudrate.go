package serial

import (
	"strconv"
	"strings"
)

type BaudRate int

func (b BaudRate) Int() int {
	return int(b)
}

func (b BaudRate) String() string {
	return strconv.Itoa(int(b))
}

const (
	Baud9600   BaudRate = 9600
	Baud19200  BaudRate = 19200
	Baud38400  BaudRate = 38400
	Baud57600  BaudRate = 57600
	Baud115200 BaudRate = 115200
	Baud230400 BaudRate = 230400
	Baud460800 BaudRate = 460800
	Baud921600 BaudRate = 921600

	// DefaultBaudRate is preselected in the menu and used when a rate cannot be parsed.
	DefaultBaudRate = Baud115200
)

// BaudRates lists the selectable rates in menu order.
var BaudRates = []BaudRate{
	Baud9600,
	Baud19200,
	Baud38400,
	Baud57600,
	Baud115200,
	Baud230400,
	Baud460800,
	Baud921600,
}

// DefaultBaudIndex is the position of DefaultBaudRate in BaudRates.
const DefaultBaudIndex = 4

// BaudRateLabels returns BaudRates as menu text.
func BaudRateLabels() []string {
	labels := make([]string, len(BaudRates))
	for i, b := range BaudRates {
		labels[i] = b.String()
	}
	return labels
}

// ParseBaudRate converts menu text to a BaudRate. Anything that is not a
// positive integer yields DefaultBaudRate.
func ParseBaudRate(s string) BaudRate {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || v == 0 {
		return DefaultBaudRate
	}
	return BaudRate(v)
}

// IsSupportedBaudRate reports whether b is one of BaudRates.
func IsSupportedBaudRate(b BaudRate) bool {
	for _, v := range BaudRates {
		if v == b {
			return true
		}
	}
	return false
}
