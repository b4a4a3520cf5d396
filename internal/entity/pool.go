package entity

import "time"

type User struct {
	Base

	Name string `gorm:"index:,unique"`
}

type Pool struct {
	Base

	Name        string
	LotteryType LotteryType

	// The draw this pool plays. DrawNumber may be zero when the pool is
	// scheduled by date only and resolved later.
	DrawDate   time.Time
	DrawNumber int

	OwnerID string
	Owner   User `gorm:"foreignKey:OwnerID"`
}

// Ticket owns a flat ordered number sequence. It is partitioned into games of
// the lottery's size at scoring time; it never references a draw result.
type Ticket struct {
	Base

	PoolID string
	Pool   Pool `gorm:"foreignKey:PoolID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Numbers Array[int]
}
