package domain

import "fmt"

type DepositStatus string

const (
	DepositPending  DepositStatus = "pending"
	DepositApproved DepositStatus = "approved"
	DepositRejected DepositStatus = "rejected"
)

var depositTransitions = map[DepositStatus][]DepositStatus{
	DepositPending: {DepositApproved, DepositRejected},
}

func ParseDepositStatus(s string) (DepositStatus, error) {
	switch st := DepositStatus(s); st {
	case DepositPending, DepositApproved, DepositRejected:
		return st, nil
	default:
		return "", fmt.Errorf("unknown deposit status %q", s)
	}
}

func (s DepositStatus) Terminal() bool {
	return len(depositTransitions[s]) == 0
}

func (s DepositStatus) CanTransitionTo(next DepositStatus) bool {
	for _, allowed := range depositTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns next if the move from s is allowed.
func (s DepositStatus) Transition(next DepositStatus) (DepositStatus, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

func (s DepositStatus) String() string {
	return string(s)
}
