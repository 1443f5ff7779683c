package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"
)

// Sender доставляет одно SMS
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// LogSender пишет сообщение в лог (dev-режим)
type LogSender struct {
	Logger *zap.SugaredLogger
}

func (s LogSender) Send(_ context.Context, phone, message string) error {
	s.Logger.Infow("sms (log driver)", "phone", phone, "message", message)
	return nil
}

// SNSAPI часть клиента SNS, нужная для отправки SMS
type SNSAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSender отправляет SMS напрямую на номер через Amazon SNS
type SNSSender struct {
	client   SNSAPI
	senderID string
}

func NewSNSSender(client SNSAPI, senderID string) *SNSSender {
	return &SNSSender{client: client, senderID: senderID}
}

func (s *SNSSender) Send(ctx context.Context, phone, message string) error {
	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {
			DataType:    aws.String("String"),
			StringValue: aws.String("Transactional"),
		},
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(s.senderID),
		}
	}
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       aws.String(phone),
		Message:           aws.String(message),
		MessageAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

// NormalizePhone приводит номер к E.164. Номер без "+" получает код страны по умолчанию
func NormalizePhone(raw, defaultCountryCode string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	trimmed := strings.TrimSpace(raw)
	switch {
	case digits == "":
		return ""
	case strings.HasPrefix(trimmed, "+"):
		return "+" + digits
	case strings.HasPrefix(digits, "00"):
		return "+" + digits[2:]
	case defaultCountryCode != "":
		return "+" + strings.TrimPrefix(defaultCountryCode, "+") + strings.TrimLeft(digits, "0")
	default:
		return "+" + digits
	}
}
