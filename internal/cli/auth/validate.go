package auth

import (
	"Fridgella/internal/forms"
	"strings"
)

// Проверки формата на клиенте повторяют серверные правила, но не заменяют их:
// окончательное решение всегда за API.

// ValidateRegistration возвращает список проблем с данными регистрации
func ValidateRegistration(name, email, password string) []string {
	var problems []string
	if !forms.ValidPersonName(name) {
		problems = append(problems, "name: letters and spaces only, 3-50 characters")
	}
	problems = append(problems, ValidateLogin(email, password)...)
	if password != "" && !forms.StrongPassword(password) {
		problems = append(problems, "password: at least 8 characters with an uppercase letter, a digit and a symbol")
	}
	return problems
}

func ValidateLogin(email, password string) []string {
	var problems []string
	if !ValidEmail(email) {
		problems = append(problems, "email: must be a valid email address")
	}
	if password == "" {
		problems = append(problems, "password: is required")
	}
	return problems
}

// ValidEmail пробелы по краям не считаются ошибкой, сервер их тоже отрезает
func ValidEmail(email string) bool {
	return forms.ValidEmail(strings.TrimSpace(email))
}

// ValidatePhone пустой номер допустим (очищает телефон)
func ValidatePhone(phone string) []string {
	if phone == "" || forms.ValidPhone(phone) {
		return nil
	}
	return []string{"phone: 7-15 digits, optional leading +"}
}

// ValidateNewPassword проверка нового пароля при сбросе или смене
func ValidateNewPassword(password string) []string {
	if forms.StrongPassword(password) {
		return nil
	}
	return []string{"password: at least 8 characters with an uppercase letter, a digit and a symbol"}
}
