// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/campusshare/internal/admin"
	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/forum"
	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/platform/sec"
	"github.com/taibuivan/campusshare/internal/resource"
	"github.com/taibuivan/campusshare/internal/social"
)

// # Records

// userRecord pairs the public user with its credential hash.
type userRecord struct {
	user         auth.User
	passwordHash string
}

// resourceRecord pairs the public resource with the uploaded bytes.
type resourceRecord struct {
	resource resource.Resource
	content  []byte
}

// bookmarkRecord remembers who saved a resource.
type bookmarkRecord struct {
	userID     string
	resourceID string
	id         string
	createdAt  time.Time
}

type followRecord struct {
	followerID  string
	followingID string
	createdAt   time.Time
}

type voteKey struct {
	userID   string
	votable  string
	targetID string
}

// # Store

// Store is the whole backend state, guarded by a single mutex.
//
// Every accessor returns copies so handlers never share memory with the store.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	users     map[string]*userRecord
	emails    map[string]string
	resources map[string]*resourceRecord
	bookmarks map[string]bookmarkRecord
	comments  map[string]social.Comment
	ratings   map[string]social.Rating
	follows   []followRecord
	topics    map[string]*forum.Topic
	replies   map[string]*forum.Reply
	votes     map[voteKey]bool
	reports   map[string]*admin.Report
}

// NewStore creates an empty backend state.
func NewStore() *Store {
	return &Store{
		now:       time.Now,
		users:     make(map[string]*userRecord),
		emails:    make(map[string]string),
		resources: make(map[string]*resourceRecord),
		bookmarks: make(map[string]bookmarkRecord),
		comments:  make(map[string]social.Comment),
		ratings:   make(map[string]social.Rating),
		topics:    make(map[string]*forum.Topic),
		replies:   make(map[string]*forum.Reply),
		votes:     make(map[voteKey]bool),
		reports:   make(map[string]*admin.Report),
	}
}

func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.New().String()
}

// # Users

// CreateUser registers an account. The email is matched case-insensitively.
func (store *Store) CreateUser(reg auth.Registration, role sec.UserRole) (auth.User, error) {
	hash, err := sec.HashPassword(reg.Password)
	if err != nil {
		return auth.User{}, apperr.Internal(err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if _, taken := store.emails[email]; taken {
		return auth.User{}, apperr.EmailTaken()
	}
	if reg.StudentID != "" {
		for _, record := range store.users {
			if record.user.StudentID == reg.StudentID {
				return auth.User{}, apperr.Conflict("Student ID is already registered")
			}
		}
	}

	user := auth.User{
		ID:        newID(),
		Email:     email,
		StudentID: reg.StudentID,
		FirstName: strings.TrimSpace(reg.FirstName),
		LastName:  strings.TrimSpace(reg.LastName),
		Role:      role,
		IsActive:  true,
		Year:      1,
		CreatedAt: store.now(),
	}
	store.users[user.ID] = &userRecord{user: user, passwordHash: hash}
	store.emails[email] = user.ID
	return user, nil
}

// Authenticate checks credentials and returns the matching user.
func (store *Store) Authenticate(email, password string) (auth.User, error) {
	store.mu.Lock()
	id, ok := store.emails[strings.ToLower(strings.TrimSpace(email))]
	var record userRecord
	if ok {
		record = *store.users[id]
	}
	store.mu.Unlock()

	// The hash comparison runs outside the lock.
	if !ok || !sec.CheckPasswordHash(password, record.passwordHash) {
		return auth.User{}, apperr.Unauthorized("Invalid email or password")
	}
	if record.user.IsBanned {
		return auth.User{}, apperr.Forbidden("Account is banned")
	}
	return record.user, nil
}

// User fetches an account by ID.
func (store *Store) User(id string) (auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.userLocked(id)
}

func (store *Store) userLocked(id string) (auth.User, error) {
	record, ok := store.users[id]
	if !ok {
		return auth.User{}, apperr.NotFound("User")
	}
	return record.user, nil
}

func (store *Store) userRefLocked(id string) *auth.User {
	if record, ok := store.users[id]; ok {
		user := record.user
		return &user
	}
	return nil
}

// UpdateProfile applies the non-nil fields of update.
func (store *Store) UpdateProfile(id string, update auth.ProfileUpdate) (auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	record, ok := store.users[id]
	if !ok {
		return auth.User{}, apperr.NotFound("User")
	}
	if update.StudentID != nil && *update.StudentID != "" {
		for otherID, other := range store.users {
			if otherID != id && other.user.StudentID == *update.StudentID {
				return auth.User{}, apperr.Conflict("Student ID is already registered")
			}
		}
	}

	if update.FirstName != nil {
		record.user.FirstName = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		record.user.LastName = strings.TrimSpace(*update.LastName)
	}
	if update.StudentID != nil {
		record.user.StudentID = *update.StudentID
	}
	if update.Major != nil {
		record.user.Major = *update.Major
	}
	if update.Year != nil {
		record.user.Year = *update.Year
	}
	return record.user, nil
}

// Users lists every account, oldest first.
func (store *Store) Users() []auth.User {
	store.mu.Lock()
	defer store.mu.Unlock()

	users := make([]auth.User, 0, len(store.users))
	for _, record := range store.users {
		users = append(users, record.user)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
	return users
}

// SetBanned flips the ban flag of an account.
func (store *Store) SetBanned(actorID, id string, banned bool) (auth.User, error) {
	if actorID == id && banned {
		return auth.User{}, apperr.Unprocessable("Administrators cannot ban themselves")
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	record, ok := store.users[id]
	if !ok {
		return auth.User{}, apperr.NotFound("User")
	}
	record.user.IsBanned = banned
	return record.user, nil
}

// Ping reports whether the store can be locked, for the readiness probe.
func (store *Store) Ping() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.users == nil {
		return apperr.ServiceUnavailable("store is not initialised")
	}
	return nil
}
