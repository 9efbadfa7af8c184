package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds surfaced to callers. Storage failures are returned as-is with
// the driver's message; everything else wraps one of these sentinels so the
// boundary can map them (400/404/409 on the HTTP surface).
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrIntegrityViolation = errors.New("integrity violation")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}

func notFound(what string, id uint) error {
	return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
}

// translate maps gorm's record-not-found onto ErrNotFound at the service
// boundary.
func translate(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what, id)
	}
	return err
}
