package model

import "time"

// Agent represents a field agent allowed to record collections.
type Agent struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
