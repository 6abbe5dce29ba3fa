package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// Сообщения, которые показываются пользователю как есть.
	MsgPermissionDenied = "У вас нет прав для выполнения этого действия"
	MsgRequestFailed    = "Не удалось выполнить запрос"
	MsgInternal         = "Внутренняя ошибка сервера"
)

var (
	// Сессия и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenNotYetValid     = fmt.Errorf("токен ещё не активен")
	ErrNoRefreshToken       = fmt.Errorf("refresh-токен отсутствует")

	// Авторизация
	ErrUnauthorized = NewHttpError(http.StatusUnauthorized, "Требуется авторизация", nil, map[string]string{"redirect": "/login"})
	ErrForbidden    = NewHttpError(http.StatusForbidden, MsgPermissionDenied, nil, nil)

	// Контекст
	ErrSessionNotFoundInContext = fmt.Errorf("сессия не найдена в контексте запроса")
	ErrNoActiveContext          = NewHttpError(http.StatusBadRequest, "Сначала выберите ресторан и точку", nil, nil)
	ErrNoActiveRestaurant       = NewHttpError(http.StatusBadRequest, "Сначала выберите ресторан", nil, nil)

	// Общие
	ErrNotFound   = NewHttpError(http.StatusNotFound, "Запись не найдена", nil, nil)
	ErrBadRequest = NewHttpError(http.StatusBadRequest, "Неверный запрос", nil, nil)
)

// HttpError - ошибка, которая уже знает свой HTTP-статус и текст для пользователя.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, nil, nil)
}

// BackendError - ответ удалённого API с кодом не 2xx.
// Message уже извлечён из тела ответа и пригоден для показа.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
}

// IsForbidden - 403 от удалённого API или от наших гардов.
func IsForbidden(err error) bool {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Status == http.StatusForbidden
	}
	var he *HttpError
	if errors.As(err, &he) {
		return he.Code == http.StatusForbidden
	}
	return false
}

// IsUnauthorized - 401 от удалённого API или от наших гардов.
func IsUnauthorized(err error) bool {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Status == http.StatusUnauthorized
	}
	var he *HttpError
	if errors.As(err, &he) {
		return he.Code == http.StatusUnauthorized
	}
	return false
}

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
