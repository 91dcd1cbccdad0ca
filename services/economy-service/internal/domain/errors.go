package domain

import "errors"

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrGiftNotFound       = errors.New("mystery gift not found")
	ErrGiftAlreadyClaimed = errors.New("mystery gift already claimed")
	ErrJarNotFull         = errors.New("honey jar is not full")
	ErrInsufficientGems   = errors.New("not enough gems")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrGemCostMismatch    = errors.New("gem cost does not match conversion rate")
)
