package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quka-ai/quka-client/app/core"
	v1 "github.com/quka-ai/quka-client/app/logic/v1"
	"github.com/quka-ai/quka-client/pkg/i18n"
	"github.com/quka-ai/quka-client/pkg/types"
)

func NewFeedCommand(opts *Options) *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "list community discussions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				posts, err := v1.NewCommunityLogic(ctx, app).Feed(tag)
				if err != nil {
					return err
				}
				printFeed(cmd.OutOrStdout(), app, posts)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "only posts with this tag")
	cmd.AddCommand(newPublishCommand(opts))
	return cmd
}

func printFeed(w io.Writer, app *core.Core, posts []types.CommunityPost) {
	lang := app.Lang()
	if len(posts) == 0 {
		fmt.Fprintln(w, app.Localizer().Get(lang, i18n.MESSAGE_FEED_EMPTY))
		return
	}
	for _, post := range posts {
		fmt.Fprintf(w, "#%s %s\n", post.ID, post.Title)
		fmt.Fprintf(w, "  %s (%s) %s\n", post.Author.Name, post.Author.Role, post.CreatedAt)
		if excerpt := v1.Excerpt(post); excerpt != "" {
			fmt.Fprintf(w, "  %s\n", excerpt)
		}
		if len(post.Tags) > 0 {
			fmt.Fprintf(w, "  [%s]\n", strings.Join(post.Tags, "] ["))
		}
		fmt.Fprintf(w, "  %s\n\n", app.Localizer().GetWithData(lang, i18n.MESSAGE_POST_STATS, map[string]interface{}{
			"Likes":    post.Likes,
			"Comments": post.Comments,
			"Views":    post.Views,
		}))
	}
}

func newPublishCommand(opts *Options) *cobra.Command {
	var post types.CommunityPost
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "start a discussion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				created, err := v1.NewCommunityLogic(ctx, app).Publish(post)
				if err != nil {
					return err
				}
				printFeed(cmd.OutOrStdout(), app, []types.CommunityPost{created})
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&post.Title, "title", "", "discussion title")
	cmd.Flags().StringVar(&post.Content, "content", "", "discussion body")
	cmd.Flags().StringSliceVar(&post.Tags, "tag", nil, "tags, repeatable")
	cmd.MarkFlagRequired("title")
	return cmd
}
