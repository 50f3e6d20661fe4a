package approval

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// Status is the lifecycle state of an approval request.
//
//	Pending ──┬──> Approved
//	          └──> Rejected
//
// Approved and Rejected are final: a resolved approval is never reopened, a new
// request is created instead.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Approved
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "unknown",
		Pending:  "pending",
		Approved: "approved",
		Rejected: "rejected",
	}
}

// ParseStatus reads the persisted or wire form of a status.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for st, str := range getStatusStrings() {
		if st != Unknown && str == needle {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("approval status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s == Pending || s == Approved || s == Rejected {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("approval status", fmt.Errorf("%d is not a valid status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether the status can no longer change.
func (s Status) IsFinal() bool {
	return s == Approved || s == Rejected
}

// ValidateDecision checks that s is a valid resolution outcome.
func (s Status) ValidateDecision() error {
	if !s.IsFinal() {
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%s is not a valid decision", s))
	}
	return nil
}
