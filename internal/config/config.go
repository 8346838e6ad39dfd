package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Хранилища записей
const (
	BackendExcel    = "xlsx"
	BackendGSheets  = "gsheets"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config содержит конфигурацию приложения
type Config struct {
	// Хранилище
	StoreBackend string
	ExcelPath    string // fitnessdaten.xlsx

	// Google Sheets
	GoogleCredentialsPath string
	GoogleSpreadsheetID   string
	GoogleDriveFolderID   string
	SheetName             string

	// PostgreSQL
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Telegram
	BotToken      string
	AllowedChatID int64 // 0 = любой чат

	// HTTP API
	HTTPPort    string // пусто = выключен
	CORSOrigins []string

	// Ежедневная сводка
	ReportSchedule string
	ReportChatID   int64

	// Логи
	LogLevel    string
	LogFile     string
	LogToStdout bool
	LogJSON     bool
}

// Load загружает конфигурацию из переменных окружения и .env файла
func Load() (*Config, error) {
	// переменные окружения процесса важнее .env
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv собирает конфигурацию из функции чтения переменных
func FromEnv(lookup func(string) string) (*Config, error) {
	getEnv := func(key, defaultValue string) string {
		if value := strings.TrimSpace(lookup(key)); value != "" {
			return value
		}
		return defaultValue
	}

	cfg := &Config{
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendExcel)),
		ExcelPath:    getEnv("EXCEL_PATH", "fitnessdaten.xlsx"),

		GoogleCredentialsPath: getEnv("GOOGLE_CREDENTIALS_PATH", "google-credentials.json"),
		GoogleSpreadsheetID:   getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleDriveFolderID:   getEnv("GOOGLE_DRIVE_FOLDER_ID", ""),
		SheetName:             getEnv("GOOGLE_SHEET_NAME", "Entries"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "postgres"),

		BotToken: getEnv("BOT_TOKEN", ""),

		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		ReportSchedule: getEnv("REPORT_SCHEDULE", "0 0 9 * * *"),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
		LogToStdout: getEnv("LOG_TO_STDOUT", "true") == "true",
		LogJSON:     getEnv("LOG_JSON", "false") == "true",
	}

	if strings.EqualFold(cfg.HTTPPort, "off") {
		cfg.HTTPPort = ""
	}

	var err error
	if cfg.AllowedChatID, err = parseChatID(getEnv("ALLOWED_CHAT_ID", "")); err != nil {
		return nil, fmt.Errorf("ALLOWED_CHAT_ID: %w", err)
	}
	if cfg.ReportChatID, err = parseChatID(getEnv("REPORT_CHAT_ID", "")); err != nil {
		return nil, fmt.Errorf("REPORT_CHAT_ID: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendExcel:
		if c.ExcelPath == "" {
			return fmt.Errorf("EXCEL_PATH не задан")
		}
	case BackendGSheets:
		if c.GoogleCredentialsPath == "" {
			return fmt.Errorf("GOOGLE_CREDENTIALS_PATH не задан")
		}
		if c.GoogleSpreadsheetID == "" && c.GoogleDriveFolderID == "" {
			return fmt.Errorf("нужен GOOGLE_SPREADSHEET_ID или GOOGLE_DRIVE_FOLDER_ID для новой таблицы")
		}
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("неизвестное хранилище STORE_BACKEND=%q", c.StoreBackend)
	}
	return nil
}

// DSN возвращает строку подключения к базе данных
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func parseChatID(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
