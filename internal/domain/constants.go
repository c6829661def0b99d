package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default configuration values
const (
	DefaultHorizonDays = 30 // горизонт генерации слотов

	CardRefLength = 16 // длина номера карты для возврата

	OnboardingAbandonAfter = 48 * time.Hour
)

// Pagination bounds for admin listings
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DefaultCategoryRates начальные цены сеансов по категориям,
// записываются при первом старте сервиса
var DefaultCategoryRates = map[UserCategory]int64{
	CategoryEmployee: 10000,
	CategoryStudent:  8000,
	CategoryGeneral:  12000,
}

// DefaultTimeWindows дневные окна, если они не заданы в конфигурации
var DefaultTimeWindows = []TimeWindow{
	"16:00-17:30",
	"18:00-19:30",
	"20:00-21:30",
}
