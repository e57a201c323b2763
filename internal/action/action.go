// Package action defines every event the console store understands as a
// closed set of Go types. Intents ask for an operation, outcomes report
// its result, and plain actions change local state directly.
package action

import "github.com/google/uuid"

type Action interface {
	Type() string
	isAction()
}

// Intent starts an asynchronous operation. The orchestrator answers every
// intent with exactly one Outcome.
type Intent interface {
	Action
	isIntent()
}

type Outcome interface {
	Action
	RequestID() string
	Failed() bool
}

// Failure is an outcome carrying the error text shown to the user.
type Failure interface {
	Outcome
	Message() string
}

// Meta ties an outcome to the intent that caused it.
type Meta struct {
	ID string `json:"requestId"`
}

func NewMeta() Meta { return Meta{ID: uuid.NewString()} }

func (m Meta) RequestID() string { return m.ID }

type intent struct{}

func (intent) isAction() {}
func (intent) isIntent() {}

type success struct{}

func (success) isAction()    {}
func (success) Failed() bool { return false }

type failure struct{}

func (failure) isAction()    {}
func (failure) Failed() bool { return true }

type plain struct{}

func (plain) isAction() {}
