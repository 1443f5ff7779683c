// Package forms входные данные API и правила их формата.
// Пакет без зависимостей от хранилища: его импортируют и сервер, и CLI.
package forms

import (
	"Fridgella/internal/model"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	personNameRe = regexp.MustCompile(`^[A-Za-z ]{3,50}$`)
	phoneRe      = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// Validator общий экземпляр с тегами person_name, strong_password и item_status.
// В ошибках поля называются по json-тегам
var Validator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return ValidPersonName(fl.Field().String())
	})
	_ = v.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("item_status", func(fl validator.FieldLevel) bool {
		return model.ItemStatus(fl.Field().String()).Valid()
	})
	return v
}

// ValidEmail то же правило, что тег `email` в структурах запросов
func ValidEmail(s string) bool {
	return Validator.Var(s, "required,email") == nil
}

// ValidPersonName буквы и пробелы, от 3 до 50 символов
func ValidPersonName(s string) bool {
	return personNameRe.MatchString(strings.TrimSpace(s))
}

// StrongPassword не короче 8 символов, есть заглавная буква, цифра и спецсимвол
func StrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			symbol = true
		}
	}
	return upper && digit && symbol
}

func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}
