package model

import "time"

// Quest is a reusable quest definition. Per-event scheduling overrides live on
// QuestEvent; these fields are the defaults applied when none are given.
type Quest struct {
	QuestID             int64
	Name                string
	DefaultInteractions int
	DefaultStartDate    time.Time
	DefaultEndDate      time.Time
	DefaultRewardAmount int64
}

// RegisteredQuest is a quest registry entry mapping a caller-assigned
// identifier to the deployed quest instance it names.
type RegisteredQuest struct {
	QuestID      int64
	Name         string
	ContractRef  string
	QuestType    string
	RegisteredAt time.Time
}
