package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string        `env:"DATABASE_URI"`
	AuthSecret  string        `env:"AUTH_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL"`
	CORSOrigins []string      `env:"CORS_ORIGINS" envSeparator:","`
	UploadDir   string        `env:"UPLOAD_DIR"`
	AppURL      string        `env:"APP_URL"` // адрес фронтенда для ссылок в письмах
	LogFormat   string        `env:"LOG_FORMAT"`

	// Expiry notifications
	NotifyInterval time.Duration `env:"NOTIFY_INTERVAL"`
	NotifyLead     time.Duration `env:"NOTIFY_LEAD"`
	NotifyBatch    int           `env:"NOTIFY_BATCH"` // сколько продуктов берёт один обход
	SMSDriver      string        `env:"SMS_DRIVER"`   // log | sns
	SMSSenderID    string        `env:"SMS_SENDER_ID"`
	SMSCountryCode string        `env:"SMS_DEFAULT_COUNTRY_CODE"`
	AWSRegion      string        `env:"AWS_REGION"`

	// Mail
	MailDriver   string `env:"MAIL_DRIVER"` // log | smtp | ses
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM"`

	// Avatars
	AvatarDriver string `env:"AVATAR_DRIVER"` // local | s3
	S3Bucket     string `env:"S3_BUCKET"`
	S3PublicURL  string `env:"S3_PUBLIC_URL"`

	// Одноразовость ссылок сброса; без Redis используется память процесса
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL    string `env:"-"`
	ClientDBPath string `env:"CLIENT_DB_PATH"` // каталог кэша, внутри по подкаталогу на пользователя
	TokenFile    string `env:"TOKEN_FILE"`
	Version      bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// значения из env служат умолчаниями для флагов
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres DSN или путь к sqlite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "срок жизни bearer-токена")
	flag.StringVar(&cfg.UploadDir, "uploads", cfg.UploadDir, "каталог для загруженных аватаров")
	flag.DurationVar(&cfg.NotifyInterval, "notify-interval", cfg.NotifyInterval, "период обхода сроков годности")
	flag.DurationVar(&cfg.NotifyLead, "notify-lead", cfg.NotifyLead, "за сколько до истечения срока отправлять SMS")
	flag.IntVar(&cfg.NotifyBatch, "notify-batch", cfg.NotifyBatch, "сколько продуктов обрабатывает один обход")
	flag.StringVar(&cfg.SMSDriver, "sms", cfg.SMSDriver, "SMS driver: log | sns")
	flag.StringVar(&cfg.MailDriver, "mail", cfg.MailDriver, "mail driver: log | smtp | ses")
	flag.StringVar(&cfg.AvatarDriver, "avatars", cfg.AvatarDriver, "avatar storage: local | s3")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the Fridgella server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "directory for the client cache")
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to the client session file")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	applyDefaults(cfg)
	return cfg
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)

func applyDefaults(cfg *Config) {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.AppURL == "" {
		cfg.AppURL = "http://localhost:3000"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}
	if cfg.NotifyInterval <= 0 {
		cfg.NotifyInterval = time.Minute
	}
	if cfg.NotifyLead <= 0 {
		cfg.NotifyLead = 24 * time.Hour
	}
	if cfg.NotifyBatch <= 0 {
		cfg.NotifyBatch = 100
	}
	if cfg.SMSDriver == "" {
		cfg.SMSDriver = "log"
	}
	if cfg.MailDriver == "" {
		cfg.MailDriver = "log"
	}
	if cfg.SMTPPort == 0 {
		cfg.SMTPPort = 587
	}
	if cfg.AvatarDriver == "" {
		cfg.AvatarDriver = "local"
	}

	// BaseURL: только "address:port" (без схемы и пути), иначе значение по умолчанию
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}
	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	// Fill client defaults if empty
	base, err := os.UserConfigDir()
	if err != nil {
		base, _ = os.UserHomeDir()
	}
	if cfg.ClientDBPath == "" {
		cfg.ClientDBPath = filepath.Join(base, "Fridgella", "users")
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = filepath.Join(base, "Fridgella", "session.json")
	}
}
