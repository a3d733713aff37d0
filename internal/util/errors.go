package util

import "errors"

var (
	ErrInvalidVector     = errors.New("invalid vector literal")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrMalformedRow      = errors.New("malformed row")
	ErrMetadataSource    = errors.New("metadata source unreadable")

	ErrEmbedderUnavailable = errors.New("embedding provider unavailable")
)
