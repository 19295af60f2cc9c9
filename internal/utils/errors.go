package utils

import "errors"

// Common application errors used across services.
var (
	ErrProductNotFound  = errors.New("PRODUCT_NOT_FOUND")
	ErrCategoryNotFound = errors.New("CATEGORY_NOT_FOUND")
	ErrDuplicateName    = errors.New("DUPLICATE_NAME")
	ErrInvalidPrice     = errors.New("INVALID_PRICE")
	ErrInvalidStock     = errors.New("INVALID_STOCK")
	ErrInvalidConfirm   = errors.New("INVALID_CONFIRM_TOKEN")
	ErrStorageQuota     = errors.New("STORAGE_QUOTA_EXCEEDED")
)
