package notifications

import "context"

// MailClient интерфейс клиента отправки почты
type MailClient interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
