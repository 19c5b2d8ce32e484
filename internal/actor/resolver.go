// Package actor decides, once per request, whose cart the request addresses.
package actor

import (
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcore/internal/domain"
)

// Request is the identity material a transport extracted from an inbound call.
type Request struct {
	// UserID is set only when the caller's credentials were verified.
	UserID string
	// GuestToken is the opaque client-held token, possibly empty.
	GuestToken string
	// AllowMint lets the resolver allocate a guest token when none is present.
	AllowMint bool
}

type Resolution struct {
	Actor domain.Actor
	// GuestToken is the token in effect for this request, presented or minted.
	GuestToken string
	// Minted tells the transport to hand GuestToken back to the client.
	Minted bool
}

type Resolver struct {
	newToken func() string
}

func NewResolver() *Resolver {
	return &Resolver{newToken: newGuestToken}
}

// Resolve yields a user actor for authenticated callers (carrying the guest
// token for merge, if one was presented) and a guest actor otherwise.
func (r *Resolver) Resolve(req Request) (Resolution, error) {
	userID := strings.TrimSpace(req.UserID)
	guestToken := strings.TrimSpace(req.GuestToken)

	switch {
	case userID != "" && guestToken != "":
		return Resolution{Actor: domain.UserWithGuest(userID, guestToken), GuestToken: guestToken}, nil
	case userID != "":
		return Resolution{Actor: domain.User(userID)}, nil
	case guestToken != "":
		return Resolution{Actor: domain.Guest(guestToken), GuestToken: guestToken}, nil
	case req.AllowMint:
		token := r.newToken()
		return Resolution{Actor: domain.Guest(token), GuestToken: token, Minted: true}, nil
	default:
		return Resolution{}, domain.ErrActorRequired
	}
}

// newGuestToken renders a random UUID as 32 hex characters.
func newGuestToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
