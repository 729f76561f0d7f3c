package usecase

import (
	"errors"
	"fmt"
)

// usecase層の失敗はすべてHTTPErrorで返す。
// DetailsにはMOQ違反の一覧など、クライアントがまとめて表示する情報を入れる。
type HTTPError struct {
	Status  int
	Message string
	Details interface{}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func NewHTTPErrorWithDetails(status int, message string, details interface{}) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Details: details,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
