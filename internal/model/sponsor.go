package model

type Sponsor struct {
	SponsorID    int64
	CompanyName  string
	Wallet       string
	RewardPoolID int64
}
