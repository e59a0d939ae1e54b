package model

type QuestType struct {
	QuestTypeID                     int64
	Name                            string
	Description                     string
	ScreenName                      string
	QuestContractName               string
	QuestContractAddress            string
	SponsorRequirementsContractName string
	SponsorRequirementsAddress      string
}

type SponsorQuestRequirement struct {
	SponsorQuestRequirementID int64
	QuestEventID              int64
	QuestTypeID               int64
	SponsorHashtags           []string
	SponsorHashtagsRequired   bool
}
