package store

import (
	"strconv"

	"github.com/quka-ai/quka-client/pkg/register"
	"github.com/quka-ai/quka-client/pkg/types"
)

func (s *Store) AddDocument(doc types.Document) types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.ID == "" {
		doc.ID = newID()
	}
	if doc.CreatedAt == "" {
		doc.CreatedAt = s.timestamp()
		doc.UpdatedAt = doc.CreatedAt
	}
	doc.Favorited = false
	s.documents[doc.ID] = &doc
	s.documentOrder = append(s.documentOrder, doc.ID)
	return doc
}

// documentView copies the document with Favorited resolved for userID.
// Callers hold the lock.
func (s *Store) documentView(userID string, doc *types.Document) types.Document {
	view := *doc
	view.Favorited = s.favorites[userID][doc.ID]
	return view
}

func (s *Store) ListFavorites(userID string) []types.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]types.Document, 0)
	for _, id := range s.documentOrder {
		if s.favorites[userID][id] {
			list = append(list, s.documentView(userID, s.documents[id]))
		}
	}
	return list
}

func (s *Store) ToggleFavorite(userID, docID string) (types.FavoriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[docID]; !ok {
		return types.FavoriteResult{}, ErrNotFound
	}
	if s.favorites[userID] == nil {
		s.favorites[userID] = make(map[string]bool)
	}
	favorited := !s.favorites[userID][docID]
	if favorited {
		s.favorites[userID][docID] = true
	} else {
		delete(s.favorites[userID], docID)
	}
	return types.FavoriteResult{DocumentID: docID, Favorited: favorited}, nil
}

func (s *Store) SetKnowledgeBase(docID string, enabled bool) (types.KnowledgeBaseToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[docID]
	if !ok {
		return types.KnowledgeBaseToggleResult{}, ErrNotFound
	}
	doc.KBEnabled = enabled
	doc.UpdatedAt = s.timestamp()
	s.knowledgeBase.UpdatedAt = doc.UpdatedAt
	return types.KnowledgeBaseToggleResult{DocumentID: docID, Enabled: enabled}, nil
}

func (s *Store) KnowledgeBase() types.KnowledgeBase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kb := s.knowledgeBase
	for _, doc := range s.documents {
		if doc.KBEnabled {
			kb.DocumentCount++
		}
	}
	return kb
}

func (s *Store) UpdateKnowledgeBaseConfig(cfg types.KnowledgeBaseConfig) (types.KnowledgeBase, error) {
	if cfg.ChunkSize < 0 || cfg.ChunkOverlap < 0 || cfg.TopK < 0 {
		return types.KnowledgeBase{}, ErrInvalid
	}
	if cfg.ChunkSize > 0 && cfg.ChunkOverlap >= cfg.ChunkSize {
		return types.KnowledgeBase{}, ErrInvalid
	}

	s.mu.Lock()
	s.knowledgeBase.Config = cfg
	s.knowledgeBase.UpdatedAt = s.timestamp()
	s.mu.Unlock()

	return s.KnowledgeBase(), nil
}

func (s *Store) ListKnowledgeBaseDocuments(userID string) []types.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]types.Document, 0)
	for _, id := range s.documentOrder {
		if doc := s.documents[id]; doc.KBEnabled {
			list = append(list, s.documentView(userID, doc))
		}
	}
	return list
}

// KnowledgeBaseTitles lists the titles of documents in the knowledge base.
func (s *Store) KnowledgeBaseTitles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var titles []string
	for _, id := range s.documentOrder {
		if doc := s.documents[id]; doc.KBEnabled {
			titles = append(titles, doc.Title)
		}
	}
	return titles
}

func (s *Store) ListComments(docID string) ([]types.RawComment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.documents[docID]; !ok {
		return nil, ErrNotFound
	}
	return append([]types.RawComment{}, s.comments[docID]...), nil
}

func (s *Store) AddComment(user types.User, docID string, req types.CreateCommentRequest) (types.RawComment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[docID]; !ok {
		return types.RawComment{}, ErrNotFound
	}
	if req.ParentID != "" && !s.hasComment(docID, req.ParentID) {
		return types.RawComment{}, ErrInvalid
	}

	comment := types.RawComment{
		ID:         newID(),
		DocumentID: docID,
		ParentID:   req.ParentID,
		Content:    req.Content,
		Author: types.CommentAuthor{
			ID:       user.ID,
			Username: user.Username,
			Avatar:   user.Avatar,
		},
		// the backend reports counters as strings
		LikeCount: types.String(strconv.Itoa(0)),
		CreatedAt: s.timestamp(),
	}
	s.comments[docID] = append(s.comments[docID], comment)
	return comment, nil
}

func (s *Store) hasComment(docID, id string) bool {
	for _, c := range s.comments[docID] {
		if c.ID == id {
			return true
		}
	}
	return false
}

func init() {
	register.RegisterFunc[*Seeder](SeedKey{}, func(seed *Seeder) {
		guide := seed.Store.AddDocument(types.Document{Title: "Getting started"})
		seed.Store.AddDocument(types.Document{Title: "Release notes"})
		seed.Store.SetKnowledgeBase(guide.ID, true)
		seed.Store.ToggleFavorite(seed.Demo.ID, guide.ID)
	})
}
