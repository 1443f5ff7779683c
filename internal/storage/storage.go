// Package storage сохраняет аватары пользователей.
package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
)

// MaxAvatarSize предельный размер изображения после декодирования
const MaxAvatarSize = 2 << 20

var (
	ErrInvalidDataURI  = errors.New("invalid data uri")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image too large")
)

var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AvatarStore сохраняет изображение и возвращает публичный URL
type AvatarStore interface {
	Save(ctx context.Context, userID, contentType string, data []byte) (string, error)
}

// IsDataURI проверяет, похожа ли строка на inline-изображение
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// DecodeDataURI разбирает data:<mime>;base64,<payload>
func DecodeDataURI(s string) (string, []byte, error) {
	if !IsDataURI(s) {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	contentType, enc, ok := strings.Cut(meta, ";")
	if !ok || enc != "base64" {
		return "", nil, ErrInvalidDataURI
	}
	contentType = strings.ToLower(contentType)
	if _, ok := extByType[contentType]; !ok {
		return "", nil, ErrUnsupportedType
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxAvatarSize+3 {
		return "", nil, ErrTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, ErrInvalidDataURI
	}
	if len(data) > MaxAvatarSize {
		return "", nil, ErrTooLarge
	}
	if contentType == "image/jpg" {
		contentType = "image/jpeg"
	}
	return contentType, data, nil
}

// Ext расширение файла для типа
func Ext(contentType string) string {
	if e, ok := extByType[contentType]; ok {
		return e
	}
	return ".bin"
}
