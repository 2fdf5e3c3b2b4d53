package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"mydrive-server/internal/apperror"
)

func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	}{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	json.NewEncoder(w).Encode(errorResponse)
}

// HandleAppError : сопоставляет ошибки ядра с HTTP статусами.
// apperror.ErrCorrupt логируется отдельно: это сигнал о нарушенном инварианте
func HandleAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrUnauthorized):
		HandleError(w, apperror.ErrUnauthorized.Error(), http.StatusUnauthorized)
	case errors.Is(err, apperror.ErrForbidden):
		HandleError(w, apperror.ErrForbidden.Error(), http.StatusForbidden)
	case errors.Is(err, apperror.ErrNotFound):
		HandleError(w, apperror.ErrNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, apperror.ErrDuplicateName):
		HandleError(w, apperror.ErrDuplicateName.Error(), http.StatusConflict)
	case errors.Is(err, apperror.ErrInvalidParent):
		HandleError(w, apperror.ErrInvalidParent.Error(), http.StatusBadRequest)
	case errors.Is(err, apperror.ErrSelfShare):
		HandleError(w, apperror.ErrSelfShare.Error(), http.StatusBadRequest)
	case errors.Is(err, apperror.ErrUnknownUser):
		HandleError(w, apperror.ErrUnknownUser.Error(), http.StatusBadRequest)
	case errors.Is(err, apperror.ErrCorrupt):
		log.Printf("ALERT нарушение инварианта: %v", err)
		HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	default:
		log.Println(err)
		HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
