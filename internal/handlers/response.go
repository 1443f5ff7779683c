package handlers

import (
	"Fridgella/internal/service"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// maxBodyBytes аватар в data URI занимает до ~2.7 МБ
const maxBodyBytes = 4 << 20

var errEmptyBody = errors.New("request body is required")

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeOK ответ {success:true, ...fields}
func writeOK(w http.ResponseWriter, status int, fields map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// writeFail ответ {success:false, message}
func writeFail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "message": msg})
}

func writeValidation(w http.ResponseWriter, ve *service.ValidationError) {
	fields := ve.Fields
	if fields == nil {
		fields = []service.FieldError{}
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"message": ve.Error(),
		"errors":  fields,
	})
}

// writeError маппит ошибку сервиса в HTTP-ответ; неожиданные ошибки логируются и скрываются
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeValidation(w, ve)
	case errors.Is(err, service.ErrValidation):
		writeFail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthentication):
		writeFail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAuthorization):
		writeFail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeFail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		writeFail(w, http.StatusConflict, err.Error())
	default:
		logger.Errorw(op+": internal error", "error", err)
		writeFail(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON читает тело запроса с ограничением размера
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

// badBody ответ на нечитаемое тело запроса
func badBody(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	logger.Warnw(op+": invalid request body", "error", err)
	if errors.Is(err, errEmptyBody) {
		writeFail(w, http.StatusBadRequest, errEmptyBody.Error())
		return
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeFail(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeFail(w, http.StatusBadRequest, "invalid request body")
}
