package engine

import "errors"

var (
	ErrNotAuthorized     = errors.New("caller is not the merchant or an administrator")
	ErrMerchantNotFound  = errors.New("merchant config not found or inactive")
	ErrInvalidAmount     = errors.New("commission amount must be positive")
	ErrInvalidThreshold  = errors.New("payout threshold must be non-negative")
	ErrInvalidRate       = errors.New("default commission rate must be within 0-10000 bp")
	ErrInvalidRecipient  = errors.New("recipient id must be non-zero")
	ErrNoPendingPayout   = errors.New("no pending payout for recipient")
	ErrThresholdNotMet   = errors.New("pending balance below merchant payout threshold")
	ErrTransferFailed    = errors.New("transfer failed, pending balance restored")
	ErrBatchLimit        = errors.New("batch recipient list exceeds limit")
	ErrScheduleNotInit   = errors.New("schedule state not initialized")
)
