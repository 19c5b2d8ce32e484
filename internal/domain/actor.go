package domain

import "fmt"

type ActorKind int

const (
	ActorUser ActorKind = iota + 1
	ActorGuest
)

func (k ActorKind) String() string {
	switch k {
	case ActorUser:
		return "user"
	case ActorGuest:
		return "guest"
	default:
		return "unknown"
	}
}

// Actor identifies whose cart is being addressed: exactly one of a user id or a
// guest token. A user actor may additionally carry the guest token the client
// still holds, which triggers a guest->user merge.
type Actor struct {
	kind       ActorKind
	id         string
	guestToken string
}

func User(userID string) Actor {
	return Actor{kind: ActorUser, id: userID}
}

func Guest(guestToken string) Actor {
	return Actor{kind: ActorGuest, id: guestToken}
}

// UserWithGuest is a user who still presents the guest token issued before login.
func UserWithGuest(userID, guestToken string) Actor {
	return Actor{kind: ActorUser, id: userID, guestToken: guestToken}
}

func (a Actor) Kind() ActorKind { return a.kind }

func (a Actor) ID() string { return a.id }

func (a Actor) IsZero() bool { return a.kind == 0 || a.id == "" }

// CarriedGuest returns the guest token held by a user actor, if any.
func (a Actor) CarriedGuest() (string, bool) {
	if a.kind != ActorUser || a.guestToken == "" {
		return "", false
	}
	return a.guestToken, true
}

// Owner drops any carried guest token, leaving the identity the cart row is keyed by.
func (a Actor) Owner() Actor {
	return Actor{kind: a.kind, id: a.id}
}

// Columns converts the actor into the nullable (user_id, guest_id) pair used by storage.
func (a Actor) Columns() (userID, guestID *string) {
	id := a.id
	switch a.kind {
	case ActorUser:
		return &id, nil
	case ActorGuest:
		return nil, &id
	default:
		return nil, nil
	}
}

// ActorFromColumns is the inverse of Columns.
func ActorFromColumns(userID, guestID *string) (Actor, error) {
	switch {
	case userID != nil && guestID != nil:
		return Actor{}, fmt.Errorf("cart owned by both user[%s] and guest[%s]", *userID, *guestID)
	case userID != nil:
		return User(*userID), nil
	case guestID != nil:
		return Guest(*guestID), nil
	default:
		return Actor{}, nil
	}
}

func (a Actor) String() string {
	if a.IsZero() {
		return "none"
	}
	return a.kind.String() + ":" + a.id
}
