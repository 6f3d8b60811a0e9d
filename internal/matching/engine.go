// Package matching ranks users by how many hobbies they share with a target
// user and builds the friend-flag listing.
package matching

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hobbymatch/internal/domain"
)

// Directory is the read side of the relationship store the engine needs
type Directory interface {
	HobbyIDs(ctx context.Context, userID uint) ([]uint, error)
	UsersSharingHobbies(ctx context.Context, hobbyIDs []uint, excludeID uint) ([]domain.User, error)
	UsersExcept(ctx context.Context, userID uint) ([]domain.User, error)
	FriendIDs(ctx context.Context, userID uint) ([]uint, error)
	SentRequestReceiverIDs(ctx context.Context, userID uint) ([]uint, error)
}

// Query selects one page of ranked candidates for UserID
type Query struct {
	UserID uint
	Age    *AgeRange // nil disables age filtering
	Page   int       // 1-based
}

// Candidate is a ranked user
type Candidate struct {
	User          domain.User
	SharedHobbies int
	Age           *int // nil when date of birth is unknown
}

// Page is one page of ranked candidates
type Page struct {
	Candidates []Candidate
	PageInfo
}

// FlaggedUser is an entry of the unranked listing
type FlaggedUser struct {
	User              domain.User
	Age               *int
	FriendRequestSent bool
	IsFriend          bool
}

// Engine ranks candidates. Now is used for age computation.
type Engine struct {
	dir Directory
	Now func() time.Time
}

// NewEngine returns an Engine reading from dir with the wall clock
func NewEngine(dir Directory) *Engine {
	return &Engine{dir: dir, Now: time.Now}
}

// Rank returns the requested page of users sharing at least one hobby with
// q.UserID, most shared hobbies first, ties by ascending id. With an age
// filter, users without a date of birth never match.
func (e *Engine) Rank(ctx context.Context, q Query) (*Page, error) {
	all, err := e.Candidates(ctx, q.UserID, q.Age)
	if err != nil {
		return nil, err
	}
	items, info := Paginate(all, q.Page, PageSize)
	return &Page{Candidates: items, PageInfo: info}, nil
}

// Candidates returns the full ranked, filtered list for userID
func (e *Engine) Candidates(ctx context.Context, userID uint, ages *AgeRange) ([]Candidate, error) {
	hobbyIDs, err := e.dir.HobbyIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(hobbyIDs) == 0 {
		return []Candidate{}, nil
	}
	users, err := e.dir.UsersSharingHobbies(ctx, hobbyIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	mine := make(map[uint]struct{}, len(hobbyIDs))
	for _, id := range hobbyIDs {
		mine[id] = struct{}{}
	}
	today := e.Now()
	out := make([]Candidate, 0, len(users))
	seen := make(map[uint]bool, len(users))
	for _, u := range users {
		if u.ID == userID || seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		age := ageOf(u.DateOfBirth, today)
		if ages != nil && (age == nil || !ages.Contains(*age)) {
			continue
		}
		shared := sharedCount(mine, u.HobbyIDs())
		if shared == 0 {
			continue
		}
		out = append(out, Candidate{User: u, SharedHobbies: shared, Age: age})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SharedHobbies != out[j].SharedHobbies {
			return out[i].SharedHobbies > out[j].SharedHobbies
		}
		return out[i].User.ID < out[j].User.ID
	})
	return out, nil
}

// sharedCount is |set ∩ ids|, counting each id once
func sharedCount(set map[uint]struct{}, ids []uint) int {
	n := 0
	counted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if _, ok := set[id]; ok && !counted[id] {
			counted[id] = true
			n++
		}
	}
	return n
}

// UsersWithFlags lists every user but userID, ordered by id, flagged with
// whether userID already sent them a request and whether they are friends.
func (e *Engine) UsersWithFlags(ctx context.Context, userID uint) ([]FlaggedUser, error) {
	users, err := e.dir.UsersExcept(ctx, userID)
	if err != nil {
		return nil, err
	}
	friendIDs, err := e.dir.FriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load friends: %w", err)
	}
	sentIDs, err := e.dir.SentRequestReceiverIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load sent requests: %w", err)
	}
	friends := toSet(friendIDs)
	sent := toSet(sentIDs)
	today := e.Now()
	out := make([]FlaggedUser, len(users))
	for i, u := range users {
		out[i] = FlaggedUser{
			User:              u,
			Age:               ageOf(u.DateOfBirth, today),
			FriendRequestSent: sent[u.ID],
			IsFriend:          friends[u.ID],
		}
	}
	return out, nil
}

func toSet(ids []uint) map[uint]bool {
	m := make(map[uint]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
