package service

import (
	"context"
	"errors"
	"math/big"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/internal/quest"
)

var (
	ErrPermissionDenied    = errors.New("only admin can perform this action")
	ErrIndexOutOfBounds    = errors.New("index out of bounds")
	ErrUserExists          = errors.New("user already registered")
	ErrUserNotRegistered   = errors.New("user not registered")
	ErrQuestExists         = errors.New("quest id already exists")
	ErrQuestNotFound       = errors.New("quest id does not exist")
	ErrInvalidInteractions = errors.New("required interactions must be at least three")
	ErrRewardTypeRequired  = errors.New("reward type must be specified")
	ErrRewardNotConfigured = errors.New("no reward configured for quest")
	ErrRewardDistributed   = errors.New("reward already distributed")
)

type Service struct {
	*EventService
	*QuestService
	*UserService
	*SponsorService
	*QuestEventService
	*UserQuestEventService
	*RewardEntityService
	*QuestTypeService
	*RegistryService
	*InstanceService
	*RewardService
}

func NewService(
	events *EventService,
	quests *QuestService,
	users *UserService,
	sponsors *SponsorService,
	questEvents *QuestEventService,
	userQuestEvents *UserQuestEventService,
	rewardEntities *RewardEntityService,
	questTypes *QuestTypeService,
	registry *RegistryService,
	instances *InstanceService,
	rewards *RewardService,
) *Service {
	return &Service{
		EventService:          events,
		QuestService:          quests,
		UserService:           users,
		SponsorService:        sponsors,
		QuestEventService:     questEvents,
		UserQuestEventService: userQuestEvents,
		RewardEntityService:   rewardEntities,
		QuestTypeService:      questTypes,
		RegistryService:       registry,
		InstanceService:       instances,
		RewardService:         rewards,
	}
}

type EventRepository interface {
	CreateEvent(ctx context.Context, ev *model.Event) (int64, error)
	GetEvent(ctx context.Context, eventID int64) (*model.Event, error)
	UpdateEvent(ctx context.Context, ev *model.Event) error
	DeleteEvent(ctx context.Context, eventID int64) error
	ListEvents(ctx context.Context) ([]*model.Event, error)
	GetEventCount(ctx context.Context) (int64, error)
	GetEventByIndex(ctx context.Context, index int64) (*model.Event, error)
}

type QuestRepository interface {
	CreateQuest(ctx context.Context, q *model.Quest) (int64, error)
	GetQuest(ctx context.Context, questID int64) (*model.Quest, error)
	UpdateQuest(ctx context.Context, q *model.Quest) error
	DeleteQuest(ctx context.Context, questID int64) error
	ListQuests(ctx context.Context) ([]*model.Quest, error)
	GetQuestCount(ctx context.Context) (int64, error)
	GetQuestByIndex(ctx context.Context, index int64) (*model.Quest, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *model.User) (int64, error)
	GetUser(ctx context.Context, userID int64) (*model.User, error)
	GetUserByWallet(ctx context.Context, wallet string) (*model.User, error)
	UpdateUser(ctx context.Context, u *model.User) error
	DeleteUser(ctx context.Context, userID int64) error
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUserCount(ctx context.Context) (int64, error)
	GetUserByIndex(ctx context.Context, index int64) (*model.User, error)
	RegisterForQuest(ctx context.Context, userID, questID int64) error
	GetRegisteredQuests(ctx context.Context, userID int64) ([]int64, error)
}

type SponsorRepository interface {
	CreateSponsor(ctx context.Context, s *model.Sponsor) (int64, error)
	GetSponsor(ctx context.Context, sponsorID int64) (*model.Sponsor, error)
	UpdateSponsor(ctx context.Context, s *model.Sponsor) error
	DeleteSponsor(ctx context.Context, sponsorID int64) error
	ListSponsors(ctx context.Context) ([]*model.Sponsor, error)
	GetSponsorCount(ctx context.Context) (int64, error)
	GetSponsorByIndex(ctx context.Context, index int64) (*model.Sponsor, error)
}

type QuestEventRepository interface {
	CreateQuestEvent(ctx context.Context, q *model.QuestEvent) (int64, error)
	GetQuestEvent(ctx context.Context, questEventID int64) (*model.QuestEvent, error)
	UpdateQuestEvent(ctx context.Context, q *model.QuestEvent) error
	DeleteQuestEvent(ctx context.Context, questEventID int64) error
	ListQuestEvents(ctx context.Context) ([]*model.QuestEvent, error)
	GetQuestEventCount(ctx context.Context) (int64, error)
	GetQuestEventByIndex(ctx context.Context, index int64) (*model.QuestEvent, error)
	GetQuestEventsForSponsor(ctx context.Context, sponsorID int64) ([]*model.QuestEvent, error)
}

type UserQuestEventRepository interface {
	CreateUserQuestEvent(ctx context.Context, u *model.UserQuestEvent) (int64, error)
	GetUserQuestEvent(ctx context.Context, id int64) (*model.UserQuestEvent, error)
	UpdateUserQuestEvent(ctx context.Context, u *model.UserQuestEvent) error
	DeleteUserQuestEvent(ctx context.Context, id int64) error
	ListUserQuestEvents(ctx context.Context) ([]*model.UserQuestEvent, error)
	GetUserQuestEventCount(ctx context.Context) (int64, error)
	GetUserQuestEventByIndex(ctx context.Context, index int64) (*model.UserQuestEvent, error)
	GetQuestsForUser(ctx context.Context, userID int64) ([]*model.UserQuestEvent, error)
}

type RewardEntityRepository interface {
	CreateReward(ctx context.Context, rw *model.Reward) (int64, error)
	GetReward(ctx context.Context, id int64) (*model.Reward, error)
	UpdateReward(ctx context.Context, rw *model.Reward) error
	DeleteReward(ctx context.Context, id int64) error
	ListRewards(ctx context.Context) ([]*model.Reward, error)
	GetRewardCount(ctx context.Context) (int64, error)
	GetRewardByIndex(ctx context.Context, index int64) (*model.Reward, error)

	CreateRewardPool(ctx context.Context, p *model.RewardPool) (int64, error)
	GetRewardPool(ctx context.Context, id int64) (*model.RewardPool, error)
	UpdateRewardPool(ctx context.Context, p *model.RewardPool) error
	DeleteRewardPool(ctx context.Context, id int64) error
	ListRewardPools(ctx context.Context) ([]*model.RewardPool, error)
	GetRewardPoolCount(ctx context.Context) (int64, error)
	GetRewardPoolByIndex(ctx context.Context, index int64) (*model.RewardPool, error)
}

type QuestTypeRepository interface {
	CreateQuestType(ctx context.Context, q *model.QuestType) (int64, error)
	GetQuestType(ctx context.Context, id int64) (*model.QuestType, error)
	UpdateQuestType(ctx context.Context, q *model.QuestType) error
	DeleteQuestType(ctx context.Context, id int64) error
	ListQuestTypes(ctx context.Context) ([]*model.QuestType, error)
	GetQuestTypeCount(ctx context.Context) (int64, error)
	GetQuestTypeByIndex(ctx context.Context, index int64) (*model.QuestType, error)

	CreateSponsorQuestRequirement(ctx context.Context, s *model.SponsorQuestRequirement) (int64, error)
	GetSponsorQuestRequirement(ctx context.Context, id int64) (*model.SponsorQuestRequirement, error)
	UpdateSponsorQuestRequirement(ctx context.Context, s *model.SponsorQuestRequirement) error
	DeleteSponsorQuestRequirement(ctx context.Context, id int64) error
	ListSponsorQuestRequirements(ctx context.Context) ([]*model.SponsorQuestRequirement, error)
	GetSponsorQuestRequirementCount(ctx context.Context) (int64, error)
	GetSponsorQuestRequirementByIndex(ctx context.Context, index int64) (*model.SponsorQuestRequirement, error)
}

type RegistryRepository interface {
	RegisterQuest(ctx context.Context, q *model.RegisteredQuest) error
	GetRegisteredQuest(ctx context.Context, questID int64) (*model.RegisteredQuest, error)
	UpdateRegisteredQuest(ctx context.Context, q *model.RegisteredQuest) error
	DeleteRegisteredQuest(ctx context.Context, questID int64) error
	ListRegisteredQuests(ctx context.Context) ([]*model.RegisteredQuest, error)
	ListRegisteredQuestIDs(ctx context.Context) ([]int64, error)
	GetRegisteredQuestCount(ctx context.Context) (int64, error)
}

type InstanceRepository interface {
	CreateInstance(ctx context.Context, inst *quest.Instance) error
	GetInstance(ctx context.Context, questID int64) (*quest.Instance, error)
	SaveInstance(ctx context.Context, inst *quest.Instance) error
	SaveInteraction(ctx context.Context, inst *quest.Instance, out *quest.Outcome) error
	ListInteractions(ctx context.Context, questID int64) ([]*quest.Outcome, error)
}

type LedgerRepository interface {
	SetRewardConfig(ctx context.Context, c *model.RewardConfig) error
	GetRewardConfig(ctx context.Context, questID int64) (*model.RewardConfig, error)
	IsDistributed(ctx context.Context, questID int64, recipient string) (bool, error)
	MarkDistributed(ctx context.Context, d *model.Distribution) error
	GetDistribution(ctx context.Context, questID int64, recipient string) (*model.Distribution, error)
	GetUserByWallet(ctx context.Context, wallet string) (*model.User, error)
}

// Transferor moves reward tokens to a recipient and returns a reference to
// the settled transfer.
type Transferor interface {
	Transfer(ctx context.Context, tokenAddress, recipient string, amount *big.Int) (string, error)
}

// CompletionNotifier receives a signal whenever an interaction completes a
// quest. Implementations must not block.
type CompletionNotifier interface {
	QuestCompleted(questID int64, actor string)
}
