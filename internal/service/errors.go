package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrValidation     = errors.New("validation failed")
	ErrInvalidSetting = errors.New("invalid setting")
	ErrInvalidToken   = errors.New("invalid token")
)

// dbError maps gorm's not-found error onto ErrNotFound and wraps everything else
func dbError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
