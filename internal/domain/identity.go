package domain

import (
	"github.com/google/uuid"
)

// Identity describes the requester of a view or submit operation.
// The zero value is an anonymous identity.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Roles []string  `json:"roles"`
}

// Anonymous reports whether the identity represents an unauthenticated
// requester.
func (i Identity) Anonymous() bool {
	return i.ID == uuid.Nil
}

// HasAnyRole reports whether the identity holds at least one of the
// given roles. An empty allowed set never matches.
func (i Identity) HasAnyRole(allowed []string) bool {
	for _, want := range allowed {
		for _, have := range i.Roles {
			if want == have {
				return true
			}
		}
	}
	return false
}
