package paymentservice

import "errors"

var (
	// ErrRefundRejected возвращается, когда платежный сервис отклонил возврат
	ErrRefundRejected = errors.New("payment service rejected refund")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что PaymentService недоступен и возврат будет обработан позже вручную
	ErrServiceDegraded = errors.New("paymentservice unavailable: graceful degradation applied")
)
