// Package market holds the marketplace entities: jobs posted by
// customers, bids placed on them by photographers, and the profile and
// portfolio records joined into the bid views. All of them share one
// flat record collection, discriminated by Kind.
package market

import "github.com/google/uuid"

type Kind string

const (
	KindJob       Kind = "job"
	KindBid       Kind = "bid"
	KindProfile   Kind = "profile"
	KindPortfolio Kind = "portfolio"
)

type Role string

const (
	RoleCustomer     Role = "customer"
	RolePhotographer Role = "photographer"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RolePhotographer:
		return true
	default:
		return false
	}
}

// Identity is the resolved caller: who they are and which side of the
// marketplace they act on. It always comes from the token verifier,
// never from request bodies.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

func (i Identity) SubjectID() string {
	return i.UserID.String()
}
