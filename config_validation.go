package serial

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		if err := v.RegisterValidation("baudrate", validBaudRate); err != nil {
			panic(fmt.Sprintf("serial: registering baudrate validation: %v", err))
		}
		validate = v
	})
	return validate
}

// validBaudRate accepts the rates offered by the baud rate menu.
func validBaudRate(fl validator.FieldLevel) bool {
	f := fl.Field()
	if !f.CanInt() {
		return false
	}
	return IsSupportedBaudRate(BaudRate(f.Int()))
}

// ValidateConfig validates serial port configuration parameters
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("serial config is nil")
	}

	err := configValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "PortName":
		if fe.Tag() == "required" {
			return "port name cannot be empty"
		}
		return fmt.Sprintf("invalid port name %q: contains path traversal", fe.Value())
	case "BaudRate":
		return fmt.Sprintf("invalid baud rate %v, must be one of: %v", fe.Value(), BaudRates)
	case "ReadTimeout":
		return fmt.Sprintf("read timeout must be positive: %v", fe.Value())
	case "ReadSize":
		return fmt.Sprintf("read size must be 1-65536, got: %v", fe.Value())
	case "GraceDelay":
		return fmt.Sprintf("grace delay cannot be negative: %v", fe.Value())
	}
	return fe.Error()
}
