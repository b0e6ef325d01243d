package ledger

import (
	"time"
)

// Type classifies the direction of a transaction. The column is free-form
// text; these are the conventional values.
type Type string

const (
	TypeIncome   Type = "income"
	TypeExpense  Type = "expense"
	TypeTransfer Type = "transfer"
)

// Status represents the lifecycle state of a transaction.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Account is a named endpoint that can be the source or destination of a
// transaction. Names are unique.
type Account struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Category is an optional single classification for a transaction. Names
// are unique.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Tag is a label attached to any number of transactions. Names are unique
// and compared case-sensitively.
type Tag struct {
	ID   int64
	Name string
}

// Transaction represents one recorded movement of value between two
// accounts.
type Transaction struct {
	ID                   int64
	Date                 time.Time // calendar date, no time component
	Type                 Type
	Status               Status
	SourceAccountID      int64
	DestinationAccountID int64
	Amount               float64
	Purpose              string
	CategoryID           *int64
	Category             *Category // loaded via JOIN
	Tags                 []Tag     // sorted by name
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}
