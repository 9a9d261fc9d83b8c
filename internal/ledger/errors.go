package ledger

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the engine either wraps one of
// these or is an internal failure.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("invalid request")
)

var (
	ErrRoomNotFound       = fmt.Errorf("room %w", ErrNotFound)
	ErrInviteNotFound     = fmt.Errorf("invite code %w", ErrNotFound)
	ErrMemberNotFound     = fmt.Errorf("member %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrNotMember          = fmt.Errorf("%w: not a member of this room", ErrForbidden)
	ErrNotOwner           = fmt.Errorf("%w: only the room owner can do this", ErrForbidden)
	ErrNotOwnMembership   = fmt.Errorf("%w: members can only change their own nickname", ErrForbidden)
	ErrOutstandingBalance = fmt.Errorf("%w: balance must be settled before leaving", ErrConflict)
	ErrInviteExhausted    = fmt.Errorf("%w: could not allocate a unique invite code", ErrConflict)
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be positive and at most 99999999.99", ErrValidation)
	ErrSelfTransfer       = fmt.Errorf("%w: payer and payee must differ", ErrValidation)
	ErrPayeeNotMember     = fmt.Errorf("%w: payee is not a member of this room", ErrValidation)
	ErrNicknameTooLong    = fmt.Errorf("%w: nickname is too long", ErrValidation)
	ErrRoomNameTooLong    = fmt.Errorf("%w: room name is too long", ErrValidation)
)
