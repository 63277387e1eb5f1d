package ruleerrors

import (
	"fmt"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrAlreadyInitialized indicates a genesis was added to a DAG that already has one.
	ErrAlreadyInitialized = newRuleError("ErrAlreadyInitialized")

	// ErrInvalidGenesis indicates a genesis header that declares parents.
	ErrInvalidGenesis = newRuleError("ErrInvalidGenesis")

	// ErrUnknownParent indicates a block references a parent the DAG doesn't know.
	// Use NewErrMissingParents to build an error carrying the missing hashes.
	ErrUnknownParent = newRuleError("ErrUnknownParent")

	// ErrDuplicateBlock indicates a block with the same hash but different
	// content already exists.
	ErrDuplicateBlock = newRuleError("ErrDuplicateBlock")

	// ErrNoParents indicates a non-genesis block that is missing parents.
	ErrNoParents = newRuleError("ErrNoParents")

	// ErrInvalidK indicates a GHOSTDAG K parameter outside of the supported range.
	ErrInvalidK = newRuleError("ErrInvalidK")

	// ErrNotFound indicates a requested block does not exist.
	ErrNotFound = newRuleError("ErrNotFound")

	// ErrUnknownBlock indicates an ordering query that names a block the DAG doesn't know.
	ErrUnknownBlock = newRuleError("ErrUnknownBlock")

	// ErrDisconnected indicates an ordering query whose low block is not in the
	// selected parent chain of its high block.
	ErrDisconnected = newRuleError("ErrDisconnected")

	// ErrInvalidRange indicates a blue score range whose low end is above its high end.
	ErrInvalidRange = newRuleError("ErrInvalidRange")
)

// ErrIntegrityFault marks errors after which the DAG refuses further writes.
// Test for it with errors.Is.
var ErrIntegrityFault = errors.New("ErrIntegrityFault")

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block or query failed due to one of the consensus
// rules. The caller can use errors.Is or errors.As to determine if a
// failure was specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

// Is reports whether target is a RuleError of the same kind, regardless of inner errors
func (e RuleError) Is(target error) bool {
	var targetRuleError RuleError
	if !errors.As(target, &targetRuleError) {
		return false
	}
	return e.message == targetRuleError.message
}

// Kind returns the name of the rule that was violated, without inner errors
func (e RuleError) Kind() string {
	return e.message
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// IsRuleError returns true if err is, or wraps, a RuleError
func IsRuleError(err error) bool {
	var ruleError RuleError
	return errors.As(err, &ruleError)
}

// ErrMissingParents indicates a block points to unknown parent(s).
type ErrMissingParents struct {
	MissingParentHashes []*externalapi.DomainHash
}

func (e ErrMissingParents) Error() string {
	return fmt.Sprintf("missing the following parent hashes: %v", e.MissingParentHashes)
}

// NewErrMissingParents creates a new ErrMissingParents error wrapped in an ErrUnknownParent RuleError
func NewErrMissingParents(missingParentHashes []*externalapi.DomainHash) error {
	return errors.WithStack(RuleError{
		message: ErrUnknownParent.message,
		inner:   ErrMissingParents{missingParentHashes},
	})
}

// ErrIntegrity wraps the error that put the DAG into its integrity-fault state
type ErrIntegrity struct {
	Cause error
}

func (e ErrIntegrity) Error() string {
	return fmt.Sprintf("%s: %s", ErrIntegrityFault, e.Cause)
}

// Unwrap satisfies the errors.Unwrap interface
func (e ErrIntegrity) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrIntegrityFault) true for every ErrIntegrity
func (e ErrIntegrity) Is(target error) bool {
	return target == ErrIntegrityFault
}

// NewErrIntegrity wraps cause as an integrity fault
func NewErrIntegrity(cause error) error {
	return errors.WithStack(ErrIntegrity{Cause: cause})
}
