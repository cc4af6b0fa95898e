package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"szabo-data/inkwell/internal/api"
)

func TestSessionPairRequiresBothHalves(t *testing.T) {
	cases := []struct {
		name    string
		token   string
		rawUser string
	}{
		{"both missing", "", ""},
		{"token only", "tok", ""},
		{"identity only", "", `{"id":1,"username":"alice","role":"AUTHOR"}`},
		{"unreadable identity", "tok", "{not json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Session{token: tc.token, rawUser: tc.rawUser, resolved: true}
			assert.False(t, s.IsAuthenticated())
			_, ok := s.Credential()
			assert.False(t, ok)
			_, ok = s.Identity()
			assert.False(t, ok)
		})
	}
}

func TestSessionSetAuthEstablishesPair(t *testing.T) {
	s := &Session{resolved: true, isNew: true}
	user := api.User{ID: 7, Username: "alice", Email: "alice@example.com", Role: api.RoleAuthor}
	require.NoError(t, s.SetAuth("tok-123", user))

	require.True(t, s.IsAuthenticated())
	token, ok := s.Credential()
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)

	identity, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, int64(7), identity.ID)
	assert.Equal(t, "alice", identity.Username)
	assert.False(t, s.IsAdmin())
}

func TestSessionIsAdmin(t *testing.T) {
	s := &Session{resolved: true}
	require.NoError(t, s.SetAuth("tok", api.User{ID: 1, Username: "root", Role: api.RoleAdmin}))
	assert.True(t, s.IsAdmin())
}

func TestSessionClearIsIdempotent(t *testing.T) {
	s := &Session{resolved: true}
	require.NoError(t, s.SetAuth("tok", api.User{ID: 1, Username: "alice"}))
	s.AddFlash(FlashSuccess, "hello")

	s.Clear()
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.PopFlashes())
	assert.True(t, s.destroyed)

	s.Clear()
	assert.False(t, s.IsAuthenticated())
	assert.True(t, s.destroyed)
}

func TestSessionClearSurvivesSetAuth(t *testing.T) {
	s := &Session{resolved: true}
	s.Clear()
	require.NoError(t, s.SetAuth("tok", api.User{ID: 1, Username: "alice"}))
	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.destroyed)
}

func TestSessionFlashesPopOnce(t *testing.T) {
	s := &Session{resolved: true}
	s.AddFlash(FlashSuccess, "saved")
	s.AddFlash(FlashError, "oops")

	flashes := s.PopFlashes()
	require.Len(t, flashes, 2)
	assert.Equal(t, Flash{Kind: FlashSuccess, Message: "saved"}, flashes[0])
	assert.Equal(t, Flash{Kind: FlashError, Message: "oops"}, flashes[1])
	assert.Nil(t, s.PopFlashes())
}

func TestSessionNilSafety(t *testing.T) {
	var s *Session
	assert.False(t, s.Resolved())
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())
	assert.Nil(t, s.PopFlashes())
	assert.NoError(t, s.SetAuth("tok", api.User{}))
	s.Clear()
	s.AddFlash(FlashError, "ignored")
}
