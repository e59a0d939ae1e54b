package model

import "time"

type EventStatus int

const (
	EventStatusActive EventStatus = iota
	EventStatusPaused
	EventStatusClosed
)

type Event struct {
	EventID     int64
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      EventStatus
}
