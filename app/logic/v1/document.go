package v1

import (
	"context"

	"github.com/quka-ai/quka-client/app/core"
	"github.com/quka-ai/quka-client/pkg/adapter"
	"github.com/quka-ai/quka-client/pkg/types"
)

type DocumentLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewDocumentLogic(ctx context.Context, core *core.Core) *DocumentLogic {
	return &DocumentLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *DocumentLogic) Comments(docID string) ([]types.Comment, error) {
	list, err := l.core.Client().GetDocumentComments(l.ctx, docID)
	if err != nil {
		return nil, apiError("DocumentLogic.Comments.GetDocumentComments", err)
	}
	return adapter.RawCommentsToComments(list, l.core.AdapterOptions()...), nil
}

func (l *DocumentLogic) PostComment(docID string, req types.CreateCommentRequest) (types.Comment, error) {
	raw, err := l.core.Client().PostDocumentComment(l.ctx, docID, req)
	if err != nil {
		return types.Comment{}, apiError("DocumentLogic.PostComment.PostDocumentComment", err)
	}
	return adapter.RawCommentToComment(*raw, l.core.AdapterOptions()...), nil
}

func (l *DocumentLogic) Favorites() ([]types.Document, error) {
	list, err := l.core.Client().GetFavorites(l.ctx)
	if err != nil {
		return nil, apiError("DocumentLogic.Favorites.GetFavorites", err)
	}
	return list, nil
}

func (l *DocumentLogic) ToggleFavorite(docID string) (bool, error) {
	res, err := l.core.Client().ToggleFavorite(l.ctx, docID)
	if err != nil {
		return false, apiError("DocumentLogic.ToggleFavorite", err)
	}
	return res.Favorited, nil
}

// SetKnowledgeBase adds the document to the knowledge base or takes it out.
func (l *DocumentLogic) SetKnowledgeBase(docID string, enabled bool) (bool, error) {
	toggle := l.core.Client().DisableKnowledgeBase
	if enabled {
		toggle = l.core.Client().EnableKnowledgeBase
	}
	res, err := toggle(l.ctx, docID)
	if err != nil {
		return false, apiError("DocumentLogic.SetKnowledgeBase", err)
	}
	return res.Enabled, nil
}

func (l *DocumentLogic) KnowledgeBase() (*types.KnowledgeBase, []types.Document, error) {
	kb, err := l.core.Client().GetKnowledgeBase(l.ctx)
	if err != nil {
		return nil, nil, apiError("DocumentLogic.KnowledgeBase.GetKnowledgeBase", err)
	}
	docs, err := l.core.Client().ListKnowledgeBaseDocuments(l.ctx)
	if err != nil {
		return nil, nil, apiError("DocumentLogic.KnowledgeBase.ListKnowledgeBaseDocuments", err)
	}
	return kb, docs, nil
}

func (l *DocumentLogic) UpdateKnowledgeBaseConfig(cfg types.KnowledgeBaseConfig) (*types.KnowledgeBase, error) {
	kb, err := l.core.Client().UpdateKnowledgeBaseConfig(l.ctx, cfg)
	if err != nil {
		return nil, apiError("DocumentLogic.UpdateKnowledgeBaseConfig", err)
	}
	return kb, nil
}
