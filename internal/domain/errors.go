package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateUsername    = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUsernameRequired     = errors.New("username is required")
	ErrPasswordRequired     = errors.New("password is required")
	ErrConfirmationRequired = errors.New("password confirmation is required")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrSymbolRequired       = errors.New("stock symbol is required")
	ErrInvalidQuantity      = errors.New("shares must be a positive integer")
	ErrUnknownSymbol        = errors.New("unknown stock symbol")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientShares   = errors.New("insufficient shares")
)
