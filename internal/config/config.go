package config

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Receipt   ReceiptConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	LogLevel string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// JWTConfig holds the secret shared with the session provider. Tokens are
// only verified here, never issued.
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type PrinterConfig struct {
	Type      string // usb, network, memory, none
	USBPath   string
	Address   string
	Format    string // html, escpos
	CharWidth int
	Timeout   time.Duration
}

// ReceiptConfig carries the branding and formatting choices that differ
// between stores.
type ReceiptConfig struct {
	StoreName        string
	AddressLines     []string
	LogoURL          string
	ReceiptTitle     string
	ReportTitle      string
	ReceiptFooter    []string
	ReportFooter     string
	Locale           string
	Timezone         string
	CurrencySymbol   string
	ReceiptFraction  string // none, locale
	ReportFraction   string // none, locale
	GeneralCustomer  string
	DefaultPayment   string
	Uncategorized    string
	UnknownMenu      string
	NoPaymentMarkers []string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.WithError(err).Warn(".env file not found, using environment variables")
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Enabled:  viper.GetBool("DB_ENABLED"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Expiry: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: list("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: list("CORS_ALLOWED_METHODS"),
			AllowedHeaders: list("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			Format:    strings.ToLower(viper.GetString("PRINTER_FORMAT")),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
			Timeout:   time.Duration(viper.GetInt("PRINTER_TIMEOUT_SECONDS")) * time.Second,
		},
		Receipt: ReceiptConfig{
			StoreName:        viper.GetString("RECEIPT_STORE_NAME"),
			AddressLines:     list("RECEIPT_ADDRESS"),
			LogoURL:          viper.GetString("RECEIPT_LOGO_URL"),
			ReceiptTitle:     viper.GetString("RECEIPT_TITLE"),
			ReportTitle:      viper.GetString("REPORT_TITLE"),
			ReceiptFooter:    list("RECEIPT_FOOTER"),
			ReportFooter:     viper.GetString("REPORT_FOOTER"),
			Locale:           viper.GetString("RECEIPT_LOCALE"),
			Timezone:         viper.GetString("RECEIPT_TIMEZONE"),
			CurrencySymbol:   viper.GetString("RECEIPT_CURRENCY_SYMBOL"),
			ReceiptFraction:  viper.GetString("RECEIPT_CURRENCY_FRACTION"),
			ReportFraction:   viper.GetString("REPORT_CURRENCY_FRACTION"),
			GeneralCustomer:  viper.GetString("LABEL_GENERAL_CUSTOMER"),
			DefaultPayment:   viper.GetString("LABEL_DEFAULT_PAYMENT"),
			Uncategorized:    viper.GetString("LABEL_UNCATEGORIZED"),
			UnknownMenu:      viper.GetString("LABEL_UNKNOWN_MENU"),
			NoPaymentMarkers: list("RECEIPT_NO_PAYMENT_MARKERS"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "kasir-receipt")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_ENABLED", false)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "kasir")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 30)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_FORMAT", "html")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 32) // 58mm paper
	viper.SetDefault("PRINTER_TIMEOUT_SECONDS", 10)
	viper.SetDefault("RECEIPT_STORE_NAME", "Stay High Coffee")
	viper.SetDefault("RECEIPT_ADDRESS", "Metland Sektor 7, Blok GA3 No.16|Kec. Cileungsi, Kabupaten Bogor, Jawa Barat 16820")
	viper.SetDefault("RECEIPT_TITLE", "Struk Pembelian")
	viper.SetDefault("REPORT_TITLE", "Laporan Transaksi")
	viper.SetDefault("RECEIPT_FOOTER", "Terima kasih telah berbelanja!|Semoga harimu menyenangkan")
	viper.SetDefault("REPORT_FOOTER", "Terima kasih atas kerja keras Anda!")
	viper.SetDefault("RECEIPT_LOCALE", "id")
	viper.SetDefault("RECEIPT_TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("RECEIPT_CURRENCY_SYMBOL", "Rp")
	viper.SetDefault("RECEIPT_CURRENCY_FRACTION", "none")
	viper.SetDefault("REPORT_CURRENCY_FRACTION", "locale")
	viper.SetDefault("LABEL_GENERAL_CUSTOMER", "Umum")
	viper.SetDefault("LABEL_DEFAULT_PAYMENT", "Tunai")
	viper.SetDefault("LABEL_UNCATEGORIZED", "Tanpa Kategori")
	viper.SetDefault("LABEL_UNKNOWN_MENU", "N/A")
	viper.SetDefault("RECEIPT_NO_PAYMENT_MARKERS", "Unknown")
}

// list reads a "|" or "," separated value. Addresses and footers use "|"
// because they contain commas.
func list(key string) []string {
	raw := viper.GetString(key)
	sep := ","
	if strings.Contains(raw, "|") {
		sep = "|"
	}

	var out []string
	for _, part := range strings.Split(raw, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
