package model

import (
	"math/big"
	"time"
)

type Reward struct {
	RewardID          int64
	AttendeeID        int64
	RewardPoolID      int64
	Amount            int64
	RewardType        string
	PoolWalletAddress string
}

type RewardPool struct {
	RewardPoolID   int64
	TransferAmount int64
	QuestEventID   int64
	SponsorID      int64
}

// RewardConfig is the payout configured for a registered quest. Amount is in
// the token's smallest denomination.
type RewardConfig struct {
	QuestID      int64
	RewardType   string
	TokenAddress string
	Tier         int
	Amount       *big.Int
}

// Distribution is a reward ledger entry for one (quest, recipient) pair.
// Once written it is never reset.
type Distribution struct {
	QuestID       int64
	Recipient     string
	TxRef         string
	DistributedAt time.Time
}
