package types

import "errors"

var (
	ErrFamilyNotFound  = errors.New("family not found")
	ErrInvalidCategory = errors.New("category must be one of the fixed set")
	ErrNotAuthorized   = errors.New("credential not correct")
)
