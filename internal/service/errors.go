package service

import "fmt"

// ErrValidation reports a missing or invalid caller argument. It is raised
// synchronously, before any collaborator call.
type ErrValidation struct {
	error
}

func NewErrValidation(message string) *ErrValidation {
	return &ErrValidation{fmt.Errorf("invalid argument: %s", message)}
}

func NewErrMissingID(argument string) *ErrValidation {
	return NewErrValidation(fmt.Sprintf("%s is required", argument))
}
