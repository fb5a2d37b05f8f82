package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/quka-ai/quka-client/app/core"
	v1 "github.com/quka-ai/quka-client/app/logic/v1"
	"github.com/quka-ai/quka-client/pkg/types"
)

func NewKnowledgeBaseCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "knowledge base",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "print the knowledge base and its documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				kb, docs, err := v1.NewDocumentLogic(ctx, app).KnowledgeBase()
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "%s (%s)\n%s\n", kb.Name, lo.Ternary(kb.Enabled, "enabled", "disabled"), kb.Description)
				fmt.Fprintf(w, "model=%s chunk=%d overlap=%d topk=%d\n",
					kb.Config.EmbeddingModel, kb.Config.ChunkSize, kb.Config.ChunkOverlap, kb.Config.TopK)
				for _, d := range docs {
					fmt.Fprintf(w, "  %-20s %s\n", d.ID, d.Title)
				}
				return nil
			})
		},
	}

	var cfg types.KnowledgeBaseConfig
	configure := &cobra.Command{
		Use:   "config",
		Short: "update chunking and retrieval settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				kb, err := v1.NewDocumentLogic(ctx, app).UpdateKnowledgeBaseConfig(cfg)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", kb.UpdatedAt)
				return nil
			})
		},
	}
	configure.Flags().StringVar(&cfg.EmbeddingModel, "model", "", "embedding model")
	configure.Flags().IntVar(&cfg.ChunkSize, "chunk-size", 512, "chunk size")
	configure.Flags().IntVar(&cfg.ChunkOverlap, "chunk-overlap", 64, "chunk overlap")
	configure.Flags().IntVar(&cfg.TopK, "top-k", 5, "documents retrieved per question")

	toggle := func(use string, enabled bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <document-id>",
			Short: use + " a document in the knowledge base",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCore(opts, func(ctx context.Context, app *core.Core) error {
					on, err := v1.NewDocumentLogic(ctx, app).SetKnowledgeBase(args[0], enabled)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s kb=%t\n", args[0], on)
					return nil
				})
			},
		}
	}

	docs := &cobra.Command{
		Use:   "docs",
		Short: "list documents in the knowledge base",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				_, docs, err := v1.NewDocumentLogic(ctx, app).KnowledgeBase()
				if err != nil {
					return err
				}
				for _, d := range docs {
					fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-20s %s\n", d.ID, d.UpdatedAt, d.Title)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(show, docs, configure, toggle("enable", true), toggle("disable", false))
	return cmd
}

func NewFavoritesCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "favorite documents",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "list favorite documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				docs, err := v1.NewDocumentLogic(ctx, app).Favorites()
				if err != nil {
					return err
				}
				for _, d := range docs {
					fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", d.ID, d.Title)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(list, &cobra.Command{
		Use:   "toggle <document-id>",
		Short: "favorite or unfavorite a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				on, err := v1.NewDocumentLogic(ctx, app).ToggleFavorite(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s favorited=%t\n", args[0], on)
				return nil
			})
		},
	})
	return cmd
}

func NewCommentsCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "document comments",
	}

	list := &cobra.Command{
		Use:   "list <document-id>",
		Short: "list comments on a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				comments, err := v1.NewDocumentLogic(ctx, app).Comments(args[0])
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, c := range comments {
					indent := lo.Ternary(c.ParentID == "", "", "  ")
					fmt.Fprintf(w, "%s%s  %s (%d)\n%s  %s\n", indent, c.Author.Name, c.CreatedAt, c.Likes, indent, c.Content)
				}
				return nil
			})
		},
	}

	var parent string
	post := &cobra.Command{
		Use:   "post <document-id> <content...>",
		Short: "comment on a document",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				c, err := v1.NewDocumentLogic(ctx, app).PostComment(args[0], types.CreateCommentRequest{
					Content:  strings.Join(args[1:], " "),
					ParentID: parent,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), c.ID)
				return nil
			})
		},
	}
	post.Flags().StringVar(&parent, "parent", "", "reply to this comment")

	cmd.AddCommand(list, post)
	return cmd
}
