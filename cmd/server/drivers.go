package main

import (
	"Fridgella/internal/config"
	"Fridgella/internal/mailer"
	"Fridgella/internal/notifier"
	"Fridgella/internal/resettoken"
	"Fridgella/internal/storage"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

func loadAWS(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

func newSMSSender(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (notifier.Sender, error) {
	switch cfg.SMSDriver {
	case "log":
		return notifier.LogSender{Logger: logger}, nil
	case "sns":
		awsCfg, err := loadAWS(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return notifier.NewSNSSender(sns.NewFromConfig(awsCfg), cfg.SMSSenderID), nil
	}
	return nil, fmt.Errorf("unknown SMS_DRIVER %q", cfg.SMSDriver)
}

func newMailer(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (mailer.Mailer, error) {
	switch cfg.MailDriver {
	case "log":
		return mailer.NewLogMailer(logger), nil
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("SMTP_HOST is required for the smtp mail driver")
		}
		return mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		}), nil
	case "ses":
		awsCfg, err := loadAWS(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return mailer.NewSESMailer(ses.NewFromConfig(awsCfg), cfg.MailFrom), nil
	}
	return nil, fmt.Errorf("unknown MAIL_DRIVER %q", cfg.MailDriver)
}

func newAvatarStore(ctx context.Context, cfg *config.Config) (storage.AvatarStore, error) {
	switch cfg.AvatarDriver {
	case "local":
		return storage.NewLocalStore(cfg.UploadDir, "/uploads"), nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required for the s3 avatar driver")
		}
		awsCfg, err := loadAWS(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3PublicURL), nil
	}
	return nil, fmt.Errorf("unknown AVATAR_DRIVER %q", cfg.AvatarDriver)
}

// newResetStore без REDIS_ADDR одноразовость ссылок сброса держится в памяти процесса
func newResetStore(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (resettoken.Store, error) {
	if cfg.RedisAddr == "" {
		return resettoken.NewMemoryStore(), nil
	}
	rdb, err := resettoken.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}
	logger.Infow("reset tokens tracked in redis", "addr", cfg.RedisAddr)
	return resettoken.NewRedisStore(rdb), nil
}
