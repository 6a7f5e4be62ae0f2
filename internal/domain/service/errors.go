package service

import "errors"

// ErrInvalidWindow marks a negative lookback or a non-positive horizon.
var ErrInvalidWindow = errors.New("invalid window")
