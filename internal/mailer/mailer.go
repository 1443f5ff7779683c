// Package mailer отправляет служебные письма (ссылки сброса пароля).
package mailer

import (
	"context"

	"go.uber.org/zap"
)

// Mailer отправка одного текстового письма
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer пишет письмо в лог вместо отправки (dev-режим)
type LogMailer struct {
	Logger *zap.SugaredLogger
}

func NewLogMailer(logger *zap.SugaredLogger) *LogMailer {
	return &LogMailer{Logger: logger}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.Logger.Infow("mail (log driver)", "to", to, "subject", subject, "body", body)
	return nil
}
