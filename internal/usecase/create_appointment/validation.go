package create_appointment

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/autoshop/garage-booking/internal/domain"
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
	minVehicleYear = 1900
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, currentYear int) error {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName must not exceed %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if err := validatePhone(req.CustomerPhone); err != nil {
		return err
	}

	if req.CustomerEmail != nil && strings.TrimSpace(*req.CustomerEmail) != "" {
		if _, err := mail.ParseAddress(strings.TrimSpace(*req.CustomerEmail)); err != nil {
			return fmt.Errorf("%w: invalid customerEmail", ErrInvalidInput)
		}
	}

	if strings.TrimSpace(req.Service) == "" {
		return fmt.Errorf("%w: service is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	// Запись возможна только на начало получасового слота
	if req.Time.Minutes()%domain.SlotStepMinutes != 0 {
		return fmt.Errorf("%w: time must be on a %d-minute boundary", ErrInvalidInput, domain.SlotStepMinutes)
	}

	if req.VehicleYear != nil {
		if *req.VehicleYear < minVehicleYear || *req.VehicleYear > currentYear+1 {
			return fmt.Errorf("%w: vehicleYear must be between %d and %d", ErrInvalidInput, minVehicleYear, currentYear+1)
		}
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validatePhone допускает цифры, пробелы, скобки, дефисы, точки и ведущий плюс
func validatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return fmt.Errorf("%w: customerPhone contains invalid character %q", ErrInvalidInput, r)
		}
	}

	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return fmt.Errorf("%w: customerPhone must contain %d to %d digits", ErrInvalidInput, minPhoneDigits, maxPhoneDigits)
	}
	return nil
}
