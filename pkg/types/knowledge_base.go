package types

type KnowledgeBase struct {
	ID            string              `json:"id" validate:"required"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Enabled       bool                `json:"enabled"`
	DocumentCount int                 `json:"documentCount"`
	Config        KnowledgeBaseConfig `json:"config"`
	UpdatedAt     string              `json:"updatedAt"`
}

type KnowledgeBaseConfig struct {
	EmbeddingModel string `json:"embeddingModel"`
	ChunkSize      int    `json:"chunkSize" validate:"gte=0"`
	ChunkOverlap   int    `json:"chunkOverlap" validate:"gte=0"`
	TopK           int    `json:"topK" validate:"gte=0"`
}

type KnowledgeBaseToggleResult struct {
	DocumentID string `json:"documentId" validate:"required"`
	Enabled    bool   `json:"enabled"`
}

type ToggleKnowledgeBaseRequest struct {
	Enabled bool `json:"enabled"`
}
