package reqapi

import (
	"context"
	"net/http"

	"github.com/quka-ai/quka-client/pkg/types"
)

func (c *Client) EnableKnowledgeBase(ctx context.Context, documentID string) (*types.KnowledgeBaseToggleResult, error) {
	return c.toggleKnowledgeBase(ctx, documentID, true)
}

func (c *Client) DisableKnowledgeBase(ctx context.Context, documentID string) (*types.KnowledgeBaseToggleResult, error) {
	return c.toggleKnowledgeBase(ctx, documentID, false)
}

func (c *Client) toggleKnowledgeBase(ctx context.Context, documentID string, enabled bool) (*types.KnowledgeBaseToggleResult, error) {
	var res types.KnowledgeBaseToggleResult
	req := types.ToggleKnowledgeBaseRequest{Enabled: enabled}
	if err := c.do(ctx, "knowledge_base.toggle", http.MethodPost, endpoint("documents", documentID, "toggle-kb"), nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetKnowledgeBase(ctx context.Context) (*types.KnowledgeBase, error) {
	var kb types.KnowledgeBase
	if err := c.do(ctx, "knowledge_base.get", http.MethodGet, endpoint("knowledge-base"), nil, nil, &kb); err != nil {
		return nil, err
	}
	return &kb, nil
}

func (c *Client) UpdateKnowledgeBaseConfig(ctx context.Context, cfg types.KnowledgeBaseConfig) (*types.KnowledgeBase, error) {
	var kb types.KnowledgeBase
	if err := c.do(ctx, "knowledge_base.update", http.MethodPut, endpoint("knowledge-base"), nil, cfg, &kb); err != nil {
		return nil, err
	}
	return &kb, nil
}

func (c *Client) ListKnowledgeBaseDocuments(ctx context.Context) ([]types.Document, error) {
	var list []types.Document
	if err := c.do(ctx, "knowledge_base.documents", http.MethodGet, endpoint("knowledge-base", "documents"), nil, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []types.Document{}
	}
	return list, nil
}
