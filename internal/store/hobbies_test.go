package store

import (
	"context"
	"testing"

	"hobbymatch/internal/domain"
	"hobbymatch/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHobbyCatalogue(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	h, err := s.CreateHobby(ctx, "Chess")
	require.NoError(t, err)
	assert.NotZero(t, h.ID)
	_, err = s.CreateHobby(ctx, "Hiking")
	require.NoError(t, err)

	all, err := s.ListHobbies(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Chess", all[0].Name)
}

func TestUsersSharingHobbies(t *testing.T) {
	s, gdb := newStore(t)
	ctx := context.Background()
	h := testdb.Hobbies(t, gdb, "Chess", "Hiking", "Cooking")
	u := testdb.User(t, gdb, "u", nil, h["Chess"], h["Hiking"])
	v := testdb.User(t, gdb, "v", nil, h["Chess"])
	w := testdb.User(t, gdb, "w", nil, h["Chess"], h["Hiking"])
	testdb.User(t, gdb, "x", nil, h["Cooking"])

	ids, err := s.HobbyIDs(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{h["Chess"].ID, h["Hiking"].ID}, ids)

	got, err := s.UsersSharingHobbies(ctx, ids, u.ID)
	require.NoError(t, err)
	require.Len(t, got, 2) // w shares two hobbies but appears once
	assert.Equal(t, v.ID, got[0].ID)
	assert.Equal(t, w.ID, got[1].ID)
	assert.Len(t, got[1].Hobbies, 2)

	none, err := s.UsersSharingHobbies(ctx, nil, u.ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.HobbyIDs(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
