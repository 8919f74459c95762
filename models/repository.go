package models

import (
	"errors"
	"time"
)

// RewardPerDropOff is the fixed grant for every logged drop-off.
const RewardPerDropOff int64 = 10

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

// ===== Users =====

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt hash, never serialized
	Rewards  int64  `json:"rewards"`
	IsAdmin  bool   `json:"isAdmin"`
}

type UserRepository interface {
	Create(u *User) error
	ValidateCredentials(email, plain string) (User, error)
	GetByID(id int64) (User, error)
}

// ===== Events =====

type Event struct {
	ID          string    `json:"id" bson:"id"` // UUID, shared key with the SQL ledger
	Date        time.Time `json:"date" bson:"date"`
	Location    string    `json:"location" bson:"location"`
	Description string    `json:"description" bson:"description"`
	EventType   string    `json:"eventType,omitempty" bson:"eventType,omitempty"`
	Capacity    int       `json:"capacity,omitempty" bson:"capacity,omitempty"` // display only, never enforced
}

type EventRepository interface {
	GetAll() ([]Event, error) // ascending by date
	GetByID(id string) (Event, error)
	Create(e *Event) error
	Delete(id string) error
}

// ===== Drop-offs =====

type DropOff struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	UserEmail   string    `json:"userEmail,omitempty"`
	EventID     string    `json:"eventId"`
	Electronics []string  `json:"electronics"`
	Items       string    `json:"items"`
	Rewards     int64     `json:"rewards"`
	CreatedAt   time.Time `json:"createdAt"`
}

type DropOffRepository interface {
	// Submit records the drop-off and grants the reward in one atomic
	// step, returning the account's new balance.
	Submit(userID int64, eventID string, electronics []string, items string) (DropOff, int64, error)
	ListByEvent(eventID string) ([]DropOff, error)
	DeleteByEvent(eventID string) error
}
