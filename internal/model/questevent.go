package model

import "time"

// QuestEvent binds a quest definition to an event with per-event scheduling
// and reward overrides.
type QuestEvent struct {
	QuestEventID        int64
	EventID             int64
	QuestID             int64
	MinimumInteractions int
	StartDate           time.Time
	EndDate             time.Time
	RewardAmount        int64
	URLHashTags         string
}

type UserQuestEvent struct {
	UserQuestEventID int64
	QuestEventID     int64
	UserID           int64
	Interactions     int
	Validated        bool
	URL              string
	Completed        bool
}
