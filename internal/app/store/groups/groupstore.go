// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dalemusser/classhub/internal/app/policy/grouppolicy"
	"github.com/dalemusser/classhub/internal/app/store/kv"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// KeyPrefix is prepended to the user id to form the scoped storage key.
	KeyPrefix = "groups_v1_"
	// LegacyKey is the unscoped key written before storage was per user.
	LegacyKey = "groups_v1"

	// UntitledName is used when a group is created without a name.
	UntitledName = "Untitled Group"
)

var (
	// ErrJoinInFlight is returned when a join for the same normalized code is
	// already running on this Store.
	ErrJoinInFlight = errors.New("join already in progress for this code")
	// ErrEmptyCode is returned when a join is attempted with a blank code.
	ErrEmptyCode = errors.New("join code is empty")
	// ErrEmptyUserID is returned when a join is attempted by a user with a
	// blank id. Such a member could not be persisted.
	ErrEmptyUserID = errors.New("user id is empty")

	// ErrStorageUnavailable wraps backend read/write failures. Store
	// operations log and absorb it; it is exported for MigrateLegacy callers
	// and for tests.
	ErrStorageUnavailable = errors.New("group storage unavailable")
	// ErrMalformedRecord wraps persisted data that does not match the
	// expected layout. Affected records are dropped on load.
	ErrMalformedRecord = errors.New("malformed group record")
)

// Key returns the scoped storage key for userID.
func Key(userID string) string {
	return KeyPrefix + userID
}

// JoinOutcome reports what JoinByCode did.
type JoinOutcome int

const (
	JoinCreated JoinOutcome = iota
	JoinAlreadyMember
	JoinJoined
)

func (o JoinOutcome) String() string {
	switch o {
	case JoinCreated:
		return "created"
	case JoinAlreadyMember:
		return "already_member"
	case JoinJoined:
		return "joined"
	}
	return "unknown"
}

// MemberFlag names a toggleable permission on a Member.
type MemberFlag int

const (
	FlagIsAdmin MemberFlag = iota
	FlagHasMessagePermission
)

// ParseMemberFlag accepts the persisted field names.
func ParseMemberFlag(s string) (MemberFlag, bool) {
	switch s {
	case "isAdmin":
		return FlagIsAdmin, true
	case "hasMessagePermission":
		return FlagHasMessagePermission, true
	}
	return 0, false
}

// CreateInput carries the user-supplied fields for CreateGroup.
type CreateInput struct {
	Name        string
	Code        string
	Description string
	Privacy     models.Privacy
}

// Store is the set of groups visible to one user, backed by a single key in a
// kv.Store. Every mutation re-reads the backend, applies the change, and
// writes the merged result back before returning.
//
// Store is safe for concurrent use. Backend failures never surface to
// callers; they are logged and the in-memory state stays authoritative.
type Store struct {
	kv     kv.Store
	userID string
	key    string
	log    *zap.Logger

	mu     sync.Mutex
	groups []models.Group

	flightMu sync.Mutex
	inFlight map[string]struct{}
}

// Load reads the user's groups from backend. An absent, unreadable, or
// unparseable blob yields an empty Store.
func Load(ctx context.Context, backend kv.Store, userID string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		kv:       backend,
		userID:   userID,
		key:      Key(userID),
		log:      logger,
		inFlight: make(map[string]struct{}),
	}

	groups, err := s.read(ctx)
	if err != nil {
		s.log.Warn("group store load failed; starting empty",
			zap.String("user_id", userID), zap.Error(err))
	}
	s.groups = Merge(groups)
	return s
}

// UserID returns the id the Store is scoped to.
func (s *Store) UserID() string {
	return s.userID
}

// Groups returns a copy of every group, most recent first.
func (s *Store) Groups() []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Group, len(s.groups))
	for i, g := range s.groups {
		out[i] = g.Clone()
	}
	return out
}

// Get returns the group with the given id.
func (s *Store) Get(groupID string) (models.Group, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexByID(s.groups, groupID); i >= 0 {
		return s.groups[i].Clone(), true
	}
	return models.Group{}, false
}

// Refresh merges the persisted state over the in-memory list.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh(ctx)
}

// CreateGroup adds a new group with creator as its sole admin and persists it.
// A blank name becomes UntitledName. The code is not validated here: a blank
// code is dropped at persist time and a duplicate code replaces the older
// group with that code.
//
// A creator with a blank ID is rejected: nothing changes and the zero Group
// (empty ID) is returned.
func (s *Store) CreateGroup(ctx context.Context, creator models.User, in CreateInput) models.Group {
	if strings.TrimSpace(creator.ID) == "" {
		s.log.Warn("create group rejected: creator has no id", zap.String("user_id", s.userID))
		return models.Group{}
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = UntitledName
	}
	privacy := in.Privacy
	if privacy == "" {
		privacy = models.PrivacyOpen
	}

	g := models.Group{
		ID:          newGroupID(),
		Code:        strings.TrimSpace(in.Code),
		Name:        name,
		Description: in.Description,
		Privacy:     privacy,
		ChatMode:    models.ChatEveryone,
		CreatedBy:   creator.ID,
		Members: []models.Member{
			memberFor(creator, true),
		},
		MemberCount: 1,
	}

	if NormalizeCode(g.Code) == "" {
		s.log.Warn("group created without a code; it will not be persisted",
			zap.String("user_id", s.userID), zap.String("group_id", g.ID))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh(ctx)
	s.groups = append([]models.Group{g}, s.groups...)
	s.persist(ctx)

	return g.Clone()
}

// JoinByCode adds user to the group whose code matches, creating a minimal
// group when none does. Joining a group the user already belongs to changes
// nothing. A second join for the same code while the first is running returns
// ErrJoinInFlight without touching state. A user with a blank ID gets
// ErrEmptyUserID.
func (s *Store) JoinByCode(ctx context.Context, user models.User, code string) (models.Group, JoinOutcome, error) {
	if strings.TrimSpace(user.ID) == "" {
		return models.Group{}, 0, ErrEmptyUserID
	}
	display := strings.TrimSpace(code)
	key := NormalizeCode(code)
	if key == "" {
		return models.Group{}, 0, ErrEmptyCode
	}

	if !s.beginJoin(key) {
		return models.Group{}, 0, ErrJoinInFlight
	}
	defer s.endJoin(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh(ctx)

	var outcome JoinOutcome
	if i := indexByCode(s.groups, key); i >= 0 {
		g := &s.groups[i]
		if g.HasMember(user.ID) {
			return g.Clone(), JoinAlreadyMember, nil
		}
		g.Members = append(g.Members, memberFor(user, false))
		g.MemberCount++
		outcome = JoinJoined
	} else {
		g := models.Group{
			ID:          newGroupID(),
			Code:        display,
			Name:        "Group " + display,
			Privacy:     models.PrivacyOpen,
			ChatMode:    models.ChatEveryone,
			Members:     []models.Member{memberFor(user, false)},
			MemberCount: 1,
		}
		s.groups = append([]models.Group{g}, s.groups...)
		outcome = JoinCreated
	}

	s.persist(ctx)

	i := indexByCode(s.groups, key)
	if i < 0 {
		// unreachable: persist keeps every non-empty code
		return models.Group{}, outcome, nil
	}
	return s.groups[i].Clone(), outcome, nil
}

// SetMemberFlag sets one permission flag on a member and persists. It reports
// false, and changes nothing, if the group or member does not exist.
// Clearing isAdmin leaves hasMessagePermission as it was.
func (s *Store) SetMemberFlag(ctx context.Context, groupID, memberID string, flag MemberFlag, value bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh(ctx)

	gi := indexByID(s.groups, groupID)
	if gi < 0 {
		return false
	}
	g := &s.groups[gi]
	for mi := range g.Members {
		if g.Members[mi].UserID != memberID {
			continue
		}
		switch flag {
		case FlagIsAdmin:
			g.Members[mi].IsAdmin = value
		case FlagHasMessagePermission:
			g.Members[mi].HasMessagePermission = value
		default:
			return false
		}
		s.persist(ctx)
		return true
	}
	return false
}

// SetChatMode changes who may send messages in the group. It reports false
// for an unknown group.
func (s *Store) SetChatMode(ctx context.Context, groupID string, mode models.ChatMode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh(ctx)

	gi := indexByID(s.groups, groupID)
	if gi < 0 {
		return false
	}
	s.groups[gi].ChatMode = mode
	s.persist(ctx)
	return true
}

// RecordPost increments the group's post counter when user may post there.
func (s *Store) RecordPost(ctx context.Context, groupID string, user models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh(ctx)

	gi := indexByID(s.groups, groupID)
	if gi < 0 {
		return false
	}
	if !grouppolicy.CanPost(s.groups[gi], user) {
		return false
	}
	s.groups[gi].PostCount++
	s.persist(ctx)
	return true
}

// AdminOfAny reports whether userID created any stored group.
func (s *Store) AdminOfAny(userID string) bool {
	if userID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		if g.CreatedBy == userID {
			return true
		}
	}
	return false
}

/*─────────────────────────────────────────────────────────────────────────────*
| persistence                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// read fetches and decodes the persisted list. Dropped records are logged.
func (s *Store) read(ctx context.Context) ([]models.Group, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}
	if !ok {
		return nil, nil
	}
	groups, dropped, err := decodeGroups(raw)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		s.log.Warn("dropped malformed group records",
			zap.String("user_id", s.userID), zap.Int("count", dropped))
	}
	return groups, nil
}

// refresh lets persisted records replace in-memory ones with the same code.
// Caller holds s.mu.
func (s *Store) refresh(ctx context.Context) {
	persisted, err := s.read(ctx)
	if err != nil {
		s.log.Warn("group store refresh failed; using in-memory state",
			zap.String("user_id", s.userID), zap.Error(err))
		return
	}
	s.groups = Merge(persisted, s.groups)
}

// persist writes the in-memory list merged over whatever is stored now. The
// in-memory list adopts the merged result so a later Load matches it.
// Caller holds s.mu.
func (s *Store) persist(ctx context.Context) {
	existing, err := s.read(ctx)
	if err != nil {
		s.log.Warn("group store pre-write read failed",
			zap.String("user_id", s.userID), zap.Error(err))
		existing = nil
	}
	s.groups = Merge(s.groups, existing)

	raw, err := encodeGroups(s.groups, s.userID)
	if err != nil {
		s.log.Warn("group store encode failed",
			zap.String("user_id", s.userID), zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		s.log.Warn("group store write failed",
			zap.String("user_id", s.userID), zap.Error(errors.Join(ErrStorageUnavailable, err)))
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| join guard                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Store) beginJoin(key string) bool {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()
	if _, busy := s.inFlight[key]; busy {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *Store) endJoin(key string) {
	s.flightMu.Lock()
	delete(s.inFlight, key)
	s.flightMu.Unlock()
}

func memberFor(u models.User, admin bool) models.Member {
	return models.Member{
		UserID:               u.ID,
		Name:                 u.Name,
		Role:                 u.Role,
		AvatarRef:            u.AvatarRef,
		IsAdmin:              admin,
		HasMessagePermission: true,
	}
}

// newGroupID returns a time-ordered UUID so ids sort by creation.
func newGroupID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
