package onboarding

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/digits"
)

// sanitizeName оставляет только буквы и пробелы, схлопывая повторы пробелов.
// Возвращает ошибку, если после чистки не осталось ни одной буквы.
func sanitizeName(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsLetter(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Join(strings.Fields(b.String()), " ")
	if cleaned == "" {
		return "", fmt.Errorf("%w: name must contain letters", ErrValidationFailed)
	}
	return cleaned, nil
}

// parseToken извлекает цифры номера (персональный/студенческий),
// персидские и арабские цифры нормализуются
func parseToken(raw string) (string, error) {
	token := digits.Only(raw)
	if token == "" {
		return "", fmt.Errorf("%w: token must contain digits", ErrValidationFailed)
	}
	return token, nil
}

// parsePhone нормализует номер телефона к виду +<цифры>
func parsePhone(raw string) (string, error) {
	phone := digits.Only(raw)
	if len(phone) < 7 {
		return "", fmt.Errorf("%w: phone number is too short", ErrValidationFailed)
	}
	return "+" + phone, nil
}

// parseCardRef принимает ровно 16 цифр после нормализации
func parseCardRef(raw string) (string, error) {
	card := digits.Only(raw)
	if len(card) != domain.CardRefLength {
		return "", fmt.Errorf("%w: card number must be exactly %d digits", ErrValidationFailed, domain.CardRefLength)
	}
	return card, nil
}
