package model

type User struct {
	UserID int64
	Wallet string
	Role   string

	// Quest ids the user has been registered for, in registration order.
	// Duplicate registrations accumulate.
	RegisteredQuests []int64
}
