package store

import (
	"errors"
	"sync"
	"time"

	"github.com/quka-ai/quka-client/pkg/types"
	"github.com/quka-ai/quka-client/pkg/utils"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrExist    = errors.New("store: already exists")
	ErrInvalid  = errors.New("store: invalid argument")
)

// Store is the in-memory state of the development backend. All methods are
// safe for concurrent use.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	tokens map[string]string // token -> user id
	users  map[string]types.User

	sessions      map[string]*chatSession // session id -> session
	sessionOrder  []string
	documents     map[string]*types.Document
	documentOrder []string
	favorites     map[string]map[string]bool // user id -> document ids
	comments      map[string][]types.RawComment
	knowledgeBase types.KnowledgeBase

	teams       map[string]*types.Team
	teamOrder   []string
	members     map[string][]types.TeamMember // team id -> members
	spaces      map[string][]types.TeamSpace
	invites     map[string][]types.TeamInvite
	discussions []types.DiscussionDto
}

func New() *Store {
	return &Store{
		now:       time.Now,
		tokens:    make(map[string]string),
		users:     make(map[string]types.User),
		sessions:  make(map[string]*chatSession),
		documents: make(map[string]*types.Document),
		favorites: make(map[string]map[string]bool),
		comments:  make(map[string][]types.RawComment),
		teams:     make(map[string]*types.Team),
		members:   make(map[string][]types.TeamMember),
		spaces:    make(map[string][]types.TeamSpace),
		invites:   make(map[string][]types.TeamInvite),
		knowledgeBase: types.KnowledgeBase{
			ID:      "kb-default",
			Name:    "Knowledge Base",
			Enabled: true,
			Config: types.KnowledgeBaseConfig{
				EmbeddingModel: "text-embedding-3-small",
				ChunkSize:      512,
				ChunkOverlap:   64,
				TopK:           5,
			},
		},
	}
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// AddUser registers user and lets token authenticate as them.
func (s *Store) AddUser(token string, user types.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.tokens[token] = user.ID
}

func (s *Store) UserByToken(token string) (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tokens[token]
	if !ok {
		return types.User{}, false
	}
	user, ok := s.users[id]
	return user, ok
}

func newID() string {
	return utils.GenUniqIDStr()
}
