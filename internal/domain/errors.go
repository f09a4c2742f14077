package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")

	ErrNotEnoughBalance  = errors.New("not enough balance")
	ErrAmountTooSmall    = errors.New("amount below minimum")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrSelfTransfer      = errors.New("transfer to self")
	ErrReceiverNotFound  = errors.New("receiver not found")
	ErrAlreadyVip        = errors.New("already vip")
)
