package domain

import (
	"github.com/google/uuid"

	dErrors "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain-errors"
)

// Typed identifiers keep user, deal, and registration ids from being passed
// where another kind is expected. All are uuid-backed.
type (
	UserID         uuid.UUID
	DealID         uuid.UUID
	RegistrationID uuid.UUID
)

// ParseUserID parses a viewer or owner id from external input.
// Errors: CodeInvalidInput when the value is empty, malformed, or the nil UUID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

// ParseDealID parses a deal id from external input.
func ParseDealID(s string) (DealID, error) {
	u, err := parseUUID(s, "deal ID")
	return DealID(u), err
}

// ParseRegistrationID parses a registration id from external input.
func ParseRegistrationID(s string) (RegistrationID, error) {
	u, err := parseUUID(s, "registration ID")
	return RegistrationID(u), err
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be nil")
	}
	return u, nil
}

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id DealID) String() string { return uuid.UUID(id).String() }
func (id DealID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id RegistrationID) String() string { return uuid.UUID(id).String() }
func (id RegistrationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// NewRegistrationID returns a fresh random registration id.
func NewRegistrationID() RegistrationID {
	return RegistrationID(uuid.New())
}

// Text marshaling keeps JSON payloads and cache entries in canonical string form.

func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *UserID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id DealID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *DealID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id RegistrationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *RegistrationID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
