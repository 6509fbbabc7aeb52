package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrServiceNotFound возвращается для услуги, которой нет в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrShopClosed возвращается, когда мастерская закрыта в выбранную дату
	ErrShopClosed = errors.New("shop is closed on this date")

	// ErrInvalidTimeSlot возвращается, если время не совпадает ни с одним слотом дня
	ErrInvalidTimeSlot = errors.New("requested time is not a bookable slot")

	// ErrSlotNotAvailable возвращается, когда слот недоступен
	ErrSlotNotAvailable = errors.New("this time slot is no longer available, please pick another time")

	// ErrSlotBusy возвращается, когда на эту дату уже идет другая запись; запрос можно повторить
	ErrSlotBusy = errors.New("another booking for this date is in progress, please retry")

	// ErrInvalidBusinessHours возвращается, если переопределение часов работы на дату некорректно
	ErrInvalidBusinessHours = errors.New("business hours for this date are misconfigured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
