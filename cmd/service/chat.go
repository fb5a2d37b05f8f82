package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quka-ai/quka-client/app/core"
	v1 "github.com/quka-ai/quka-client/app/logic/v1"
	"github.com/quka-ai/quka-client/pkg/types"
)

func NewChatCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "chat sessions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "list chat sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				sessions, err := v1.NewChatLogic(ctx, app).Sessions()
				if err != nil {
					return err
				}
				for _, s := range sessions {
					fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-10s %-20s %s\n", s.ID, s.Type, s.UpdatedAt, s.Title)
				}
				return nil
			})
		},
	}

	show := &cobra.Command{
		Use:   "show <session-id>",
		Short: "print a session with its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				session, messages, err := v1.NewChatLogic(ctx, app).Open(args[0])
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "%s (%s)\n", session.Title, session.Type)
				for _, m := range messages {
					who := string(m.Role)
					if m.FromUser {
						who = "you"
					}
					fmt.Fprintf(w, "[%s] %s: %s\n", m.CreatedAt, who, m.Content)
				}
				return nil
			})
		},
	}

	var createReq types.CreateChatSessionRequest
	var sessionType string
	create := &cobra.Command{
		Use:   "create",
		Short: "start a chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			createReq.Type = types.ChatSessionType(sessionType)
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				session, err := v1.NewChatLogic(ctx, app).Create(createReq)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), session.ID)
				return nil
			})
		},
	}
	create.Flags().StringVar(&createReq.Title, "title", "", "session title")
	create.Flags().StringVar(&sessionType, "type", "", "general, document or knowledge")
	create.Flags().StringVar(&createReq.RelatedID, "related", "", "related document id")

	remove := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "delete a chat session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				return v1.NewChatLogic(ctx, app).Delete(args[0])
			})
		},
	}

	var useKB bool
	send := &cobra.Command{
		Use:   "send <session-id> <message...>",
		Short: "send a message and stream the reply",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				w := cmd.OutOrStdout()
				_, err := v1.NewChatLogic(ctx, app).Send(args[0], types.SendMessageRequest{
					Content:          strings.Join(args[1:], " "),
					UseKnowledgeBase: useKB,
				}, func(chunk string) {
					fmt.Fprint(w, chunk)
				})
				fmt.Fprintln(w)
				return err
			})
		},
	}
	send.Flags().BoolVar(&useKB, "kb", false, "answer with the knowledge base")

	cmd.AddCommand(list, show, create, remove, send)
	return cmd
}
