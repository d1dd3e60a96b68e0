package domain

import (
	"errors"
	"fmt"
)

// ドメインエラー定義
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrValidation       = errors.New("validation failed")
)

// ValidationError はエンティティ生成時のフィールド検証エラーを表す。
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation.Error(), e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalidField(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
