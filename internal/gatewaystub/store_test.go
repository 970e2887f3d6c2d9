package gatewaystub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger-client/internal/common/errors"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newStore() *Store {
	s := NewStore()
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s.SetClock(c.now)
	return s
}

func TestLoginOutcomes(t *testing.T) {
	s := newStore()
	u, err := s.CreateUser("+79022428092", "pw", "roma")
	require.NoError(t, err)

	_, err = s.Login("+79022428092", "wrong")
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))

	logged, err := s.Login("+79022428092", "pw")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	_, err = s.SetBlocked(u.ID, true)
	require.NoError(t, err)
	_, err = s.Login("+79022428092", "pw")
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))
}

func TestSearchOnlyCompletedProfiles(t *testing.T) {
	s := newStore()
	reg, err := s.Register("+70000000001", "pw")
	require.NoError(t, err)
	assert.False(t, reg.IsProfileCompleted)

	_, err = s.Search("+70000000001")
	assert.True(t, errors.IsNotFound(err))

	_, err = s.CompleteProfile(reg.ID, "kate", "", "")
	require.NoError(t, err)
	found, err := s.Search("+70000000001")
	require.NoError(t, err)
	assert.Equal(t, "kate", found.Name)

	_, err = s.Register("+70000000001", "pw")
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))
}

func TestAllUsersNewestFirst(t *testing.T) {
	s := newStore()
	a, _ := s.CreateUser("+1000", "pw", "a")
	b, _ := s.CreateUser("+2000", "pw", "b")
	admin, err := s.SeedAdmin("+3000", "pw", "root")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	all := s.AllUsers()
	require.Len(t, all, 3)
	assert.Equal(t, []int64{admin.ID, b.ID, a.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})

	again, err := s.SeedAdmin("+3000", "other", "root")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
}

func TestContactsOrderedByLastMessage(t *testing.T) {
	s := newStore()
	me, _ := s.CreateUser("+1", "pw", "me")
	quiet, _ := s.CreateUser("+2", "pw", "quiet")
	old, _ := s.CreateUser("+3", "pw", "old")
	fresh, _ := s.CreateUser("+4", "pw", "fresh")

	for _, id := range []int64{quiet.ID, old.ID, fresh.ID} {
		require.NoError(t, s.AddContact(me.ID, id))
	}
	require.NoError(t, s.AddContact(me.ID, old.ID), "adding twice is a no-op")

	_, err := s.SendMessage(me.ID, old.ID, "first")
	require.NoError(t, err)
	_, err = s.SendMessage(fresh.ID, me.ID, "newest")
	require.NoError(t, err)

	contacts := s.Contacts(me.ID)
	require.Len(t, contacts, 3)
	assert.Equal(t, "fresh", contacts[0].Name)
	assert.Equal(t, "newest", contacts[0].LastMessage)
	assert.Equal(t, "old", contacts[1].Name)
	assert.Equal(t, "quiet", contacts[2].Name)
	assert.Nil(t, contacts[2].LastMessageTime)

	assert.Empty(t, s.Contacts(fresh.ID), "links are one-directional")
}

func TestMessagesAscendingWithSenderInfo(t *testing.T) {
	s := newStore()
	a, _ := s.CreateUser("+1", "pw", "alice")
	b, _ := s.CreateUser("+2", "pw", "bob")
	c, _ := s.CreateUser("+3", "pw", "carol")

	_, _ = s.SendMessage(a.ID, b.ID, "one")
	_, _ = s.SendMessage(c.ID, a.ID, "other thread")
	_, _ = s.SendMessage(b.ID, a.ID, "two")

	msgs := s.Messages(b.ID, a.ID)
	require.Len(t, msgs, 2)
	assert.Equal(t, "one", msgs[0].Content)
	assert.Equal(t, "alice", msgs[0].SenderName)
	assert.Equal(t, "two", msgs[1].Content)
	assert.True(t, msgs[0].CreatedAt.Before(msgs[1].CreatedAt.Time))

	_, err := s.SetBlocked(c.ID, true)
	require.NoError(t, err)
	_, err = s.SendMessage(c.ID, a.ID, "blocked")
	assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))
}
