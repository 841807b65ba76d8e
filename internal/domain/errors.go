package domain

import "errors"

// ErrNoReadings indicates the store holds no readings yet.
var ErrNoReadings = errors.New("no readings recorded")
