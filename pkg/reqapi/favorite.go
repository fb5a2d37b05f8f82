package reqapi

import (
	"context"
	"net/http"

	"github.com/quka-ai/quka-client/pkg/types"
)

func (c *Client) GetFavorites(ctx context.Context) ([]types.Document, error) {
	var list []types.Document
	if err := c.do(ctx, "favorites.list", http.MethodGet, endpoint("documents", "favorites"), nil, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []types.Document{}
	}
	return list, nil
}

func (c *Client) ToggleFavorite(ctx context.Context, documentID string) (*types.FavoriteResult, error) {
	var res types.FavoriteResult
	if err := c.do(ctx, "favorites.toggle", http.MethodPost, endpoint("documents", documentID, "favorite"), nil, struct{}{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
