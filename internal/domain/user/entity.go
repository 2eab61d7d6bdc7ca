package user

import (
	"time"

	"github.com/google/uuid"

	"shutterbid/internal/domain/market"
)

// User is an account on either side of the marketplace. Credentials live
// here, outside the record collection: identity is an external
// collaborator to the bid/job core and is never derived from request
// bodies.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         market.Role `json:"role"`
	Name         string      `json:"name"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (u User) Identity() market.Identity {
	return market.Identity{UserID: u.ID, Role: u.Role}
}
