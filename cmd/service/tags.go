package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/quka-ai/quka-client/app/core"
	v1 "github.com/quka-ai/quka-client/app/logic/v1"
	"github.com/quka-ai/quka-client/pkg/safe"
	"github.com/quka-ai/quka-client/pkg/tagcloud"
)

type tagsOptions struct {
	selected string
	click    string
	html     bool
	watch    string
	topics   bool
}

func NewTagsCommand(opts *Options) *cobra.Command {
	o := &tagsOptions{}
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "show the community tag cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				if o.topics {
					return printTopics(cmd.OutOrStdout(), v1.NewCommunityLogic(ctx, app))
				}
				if o.watch != "" {
					return watchTags(ctx, cmd.OutOrStdout(), app, o)
				}
				return renderTags(cmd.OutOrStdout(), v1.NewCommunityLogic(ctx, app), o)
			})
		},
	}
	cmd.Flags().StringVar(&o.selected, "selected", "", "tag to highlight")
	cmd.Flags().StringVar(&o.click, "click", "", "select a tag as if it was clicked")
	cmd.Flags().BoolVar(&o.html, "html", false, "write html instead of text")
	cmd.Flags().StringVar(&o.watch, "watch", "", "refresh on a cron spec, e.g. \"@every 30s\"")
	cmd.Flags().BoolVar(&o.topics, "topics", false, "list tags as topics with ids")
	return cmd
}

func writeView(w io.Writer, view tagcloud.View, html bool) error {
	if html {
		return view.WriteHTML(w)
	}
	return view.WriteText(w)
}

func renderTags(w io.Writer, logic *v1.CommunityLogic, o *tagsOptions) error {
	view, component := logic.TagCloud(o.selected, func(name string) {
		o.selected = name
	})
	if o.click != "" {
		component.Click(o.click)
		view, _ = logic.TagCloud(o.selected, nil)
	}
	return writeView(w, view, o.html)
}

// watchTags re-renders on every cron tick. Each tick drops the cached tags
// so the next render fetches again.
func watchTags(ctx context.Context, w io.Writer, app *core.Core, o *tagsOptions) error {
	logic := v1.NewCommunityLogic(ctx, app)
	if err := renderTags(w, logic, o); err != nil {
		return err
	}

	c := newWatchCron()
	_, err := c.AddFunc(o.watch, func() {
		safe.RunWithLog(func() {
			app.Cache().Invalidate(v1.TAGS_QUERY_KEY)
			if err := renderTags(w, logic, o); err != nil {
				slog.Error("failed to render tag cloud", slog.String("error", err.Error()))
			}
		}, "tags.watch")
	})
	if err != nil {
		return fmt.Errorf("invalid --watch spec %q: %w", o.watch, err)
	}
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// newWatchCron skips a tick while the previous render is still running so
// renders never write to the terminal at the same time.
func newWatchCron() *cron.Cron {
	return cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
}

func printTopics(w io.Writer, logic *v1.CommunityLogic) error {
	topics, err := logic.Topics()
	if err != nil {
		return err
	}
	for _, topic := range topics {
		fmt.Fprintf(w, "%-24s %-24s %d\n", topic.ID, topic.Name, topic.PostCount)
	}
	return nil
}
