package matching

import (
	"context"
	"slices"

	"hobbymatch/internal/domain"
)

// fakeDirectory keeps users and edges in memory
type fakeDirectory struct {
	users   []domain.User
	friends map[uint][]uint
	sent    map[uint][]uint
}

func (f *fakeDirectory) user(id uint) (domain.User, bool) {
	for _, u := range f.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

func (f *fakeDirectory) HobbyIDs(_ context.Context, userID uint) ([]uint, error) {
	u, ok := f.user(userID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.HobbyIDs(), nil
}

func (f *fakeDirectory) UsersSharingHobbies(_ context.Context, hobbyIDs []uint, excludeID uint) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if u.ID == excludeID {
			continue
		}
		for _, id := range u.HobbyIDs() {
			if slices.Contains(hobbyIDs, id) {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeDirectory) UsersExcept(_ context.Context, userID uint) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if u.ID != userID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeDirectory) FriendIDs(_ context.Context, userID uint) ([]uint, error) {
	return f.friends[userID], nil
}

func (f *fakeDirectory) SentRequestReceiverIDs(_ context.Context, userID uint) ([]uint, error) {
	return f.sent[userID], nil
}
