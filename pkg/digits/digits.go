// Package digits нормализует локализованные цифры пользовательского ввода.
//
// Пользователи вводят номера персидскими (۰-۹) или арабскими (٠-٩)
// цифрами; перед валидацией они приводятся к ASCII.
package digits

import "strings"

// Fold заменяет персидские и арабские цифры на ASCII эквиваленты,
// остальные символы не трогает
func Fold(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹': // Extended Arabic-Indic (персидские)
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩': // Arabic-Indic
			return '0' + (r - '٠')
		default:
			return r
		}
	}, s)
}

// Only возвращает только ASCII цифры строки после нормализации.
// Пустой результат означает, что во вводе не было ни одной цифры.
func Only(s string) string {
	var b strings.Builder
	for _, r := range Fold(s) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
