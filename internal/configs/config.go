package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Ilyass-shw/apartment-bot/internal/constants"

	"github.com/joho/godotenv"
)

// DBconfig хранит конфигурацию для БД
type DBconfig struct {
	URL string
}

// TelegramConfig хранит учетные данные бота и id чата для уведомлений
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// ApplicantConfig - данные заявителя для автоматической подачи заявки
type ApplicantConfig struct {
	Name            string
	FirstName       string
	Phone           string
	Email           string
	ApplicationText string
}

type SchedulesConfig struct {
	Wohnraumkarte string
	Gewobag       string
	Degewo        string
	Timezone      string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

type HTTPConfig struct {
	Port string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Database     DBconfig
	Telegram     TelegramConfig
	Applicant    ApplicantConfig
	Schedules    SchedulesConfig
	HTTP         HTTPConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig

	// MarkSeenOnApplyFailure - политика API-источника при неудачной подаче
	// заявки: true (default) повторяет поведение "не подавать дважды",
	// false оставляет объявление на повтор в следующем цикле.
	MarkSeenOnApplyFailure bool
}

// requiredEnvVars - без любого из них процесс обязан упасть на старте,
// до планирования первого pipeline.
var requiredEnvVars = []string{
	"DATABASE_URL",
	"TELEGRAM_BOT_TOKEN",
	"TELEGRAM_CHAT_ID",
	"APPLICANT_NAME",
	"APPLICANT_FIRST_NAME",
	"APPLICANT_PHONE",
	"APPLICANT_EMAIL",
	"APPLICATION_TEXT",
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Файл .env опционален: в контейнерном деплое переменные приходят извне.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v.\n", envPath, err)
	}

	var missing []string
	for _, name := range requiredEnvVars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "apartment-bot")
	cfg.Database.URL = os.Getenv("DATABASE_URL")

	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.Telegram.ChatID = os.Getenv("TELEGRAM_CHAT_ID")

	cfg.Applicant.Name = os.Getenv("APPLICANT_NAME")
	cfg.Applicant.FirstName = os.Getenv("APPLICANT_FIRST_NAME")
	cfg.Applicant.Phone = os.Getenv("APPLICANT_PHONE")
	cfg.Applicant.Email = os.Getenv("APPLICANT_EMAIL")
	cfg.Applicant.ApplicationText = os.Getenv("APPLICATION_TEXT")

	cfg.Schedules.Wohnraumkarte = getEnvAsString("SCHEDULE_WOHNRAUMKARTE", constants.DefaultScheduleWohnraumkarte)
	cfg.Schedules.Gewobag = getEnvAsString("SCHEDULE_GEWOBAG", constants.DefaultScheduleGewobag)
	cfg.Schedules.Degewo = getEnvAsString("SCHEDULE_DEGEWO", constants.DefaultScheduleDegewo)
	cfg.Schedules.Timezone = getEnvAsString("SCHEDULE_TIMEZONE", constants.DefaultScheduleTimezone)

	cfg.HTTP.Port = getEnvAsString("HTTP_PORT", "8080")

	cfg.MarkSeenOnApplyFailure = getEnvAsBool("MARK_SEEN_ON_APPLY_FAILURE", true)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
