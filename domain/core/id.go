package core

import "github.com/google/uuid"

// ID is an opaque identifier.
type ID string

// NewID returns a time-ordered UUID v7, or a random v4 if the clock source fails.
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

func (id ID) String() string { return string(id) }

func (id ID) IsEmpty() bool { return id == "" }

// RunID tags one analysis run in report headers and logs.
type RunID ID

func NewRunID() RunID { return RunID(NewID()) }

func (id RunID) String() string { return string(id) }
