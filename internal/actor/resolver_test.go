package actor

import (
	"regexp"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/cartcore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestResolver_Resolve(t *testing.T) {
	userID, guestToken := gofakeit.UUID(), gofakeit.UUID()
	r := &Resolver{newToken: func() string { return "minted" }}

	tests := []struct {
		name      string
		req       Request
		want      Resolution
		wantError error
	}{
		{
			name: "user with guest token merges",
			req:  Request{UserID: userID, GuestToken: guestToken},
			want: Resolution{Actor: domain.UserWithGuest(userID, guestToken), GuestToken: guestToken},
		},
		{
			name: "user only",
			req:  Request{UserID: userID, AllowMint: true},
			want: Resolution{Actor: domain.User(userID)},
		},
		{
			name: "guest only",
			req:  Request{GuestToken: " " + guestToken + " "},
			want: Resolution{Actor: domain.Guest(guestToken), GuestToken: guestToken},
		},
		{
			name: "anonymous with minting",
			req:  Request{AllowMint: true},
			want: Resolution{Actor: domain.Guest("minted"), GuestToken: "minted", Minted: true},
		},
		{
			name:      "anonymous without minting",
			req:       Request{GuestToken: "   "},
			wantError: domain.ErrActorRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.req)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewGuestToken(t *testing.T) {
	hex32 := regexp.MustCompile(`^[0-9a-f]{32}$`)

	seen := make(map[string]struct{})
	for range 100 {
		token := newGuestToken()
		assert.Regexp(t, hex32, token)
		seen[token] = struct{}{}
	}
	assert.Len(t, seen, 100)
}
