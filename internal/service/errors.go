package service

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidUpload  = errors.New("invalid file type")
	ErrUploadTooLarge = errors.New("file too large")
	ErrNotPublic      = errors.New("checklist is not public")
)

// Error несёт сообщение для клиента (поле detail) и sentinel-причину для маппинга в HTTP-статус.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Kind }

func fail(kind error, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}
