package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/quka-ai/quka-client/app/core"
	v1 "github.com/quka-ai/quka-client/app/logic/v1"
	"github.com/quka-ai/quka-client/pkg/types"
)

func NewTeamsCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "teams, members and spaces",
	}

	// teamCommand resolves the first argument (id or slug) before running fn.
	teamCommand := func(use, short string, nargs int, fn func(cmd *cobra.Command, l *v1.TeamLogic, team *types.Team, args []string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(nargs),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCore(opts, func(ctx context.Context, app *core.Core) error {
					l := v1.NewTeamLogic(ctx, app)
					team, err := l.Resolve(args[0])
					if err != nil {
						return err
					}
					return fn(cmd, l, team, args[1:])
				})
			},
		}
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "list your teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				teams, err := v1.NewTeamLogic(ctx, app).List()
				if err != nil {
					return err
				}
				for _, t := range teams {
					fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-16s %-3d %s\n", t.ID, t.Slug, t.MemberCount, t.Name)
				}
				return nil
			})
		},
	}

	var createReq types.CreateTeamRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "create a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				team, err := v1.NewTeamLogic(ctx, app).Create(createReq)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), team.ID)
				return nil
			})
		},
	}
	create.Flags().StringVar(&createReq.Name, "name", "", "team name")
	create.Flags().StringVar(&createReq.Slug, "slug", "", "url slug")
	create.Flags().StringVar(&createReq.Description, "description", "", "description")

	show := teamCommand("show <team>", "print a team", 1, func(cmd *cobra.Command, _ *v1.TeamLogic, t *types.Team, _ []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n%s\nowner: %s  members: %d  created: %s\n", t.Name, t.Slug, t.Description, t.OwnerID, t.MemberCount, t.CreatedAt)
		return nil
	})

	var rename, describe string
	update := teamCommand("update <team>", "rename or describe a team", 1, func(cmd *cobra.Command, l *v1.TeamLogic, t *types.Team, _ []string) error {
		var req types.UpdateTeamRequest
		if cmd.Flags().Changed("name") {
			req.Name = &rename
		}
		if cmd.Flags().Changed("description") {
			req.Description = &describe
		}
		_, err := l.Update(t.ID, req)
		return err
	})
	update.Flags().StringVar(&rename, "name", "", "new name")
	update.Flags().StringVar(&describe, "description", "", "new description")

	remove := teamCommand("delete <team>", "delete a team", 1, func(_ *cobra.Command, l *v1.TeamLogic, t *types.Team, _ []string) error {
		return l.Delete(t.ID)
	})

	members := teamCommand("members <team>", "list members", 1, func(cmd *cobra.Command, l *v1.TeamLogic, t *types.Team, _ []string) error {
		list, err := l.Members(t.ID)
		if err != nil {
			return err
		}
		for _, m := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-16s %-8s %s\n", m.UserID, m.Username, m.Role, strings.Join(m.Permissions, ","))
		}
		return nil
	})
	members.AddCommand(
		teamCommand("role <team> <user-id> <role>", "change a member's role", 3, func(_ *cobra.Command, l *v1.TeamLogic, t *types.Team, args []string) error {
			_, err := l.SetMemberRole(t.ID, args[0], args[1])
			return err
		}),
		teamCommand("remove <team> <user-id>", "remove a member", 2, func(_ *cobra.Command, l *v1.TeamLogic, t *types.Team, args []string) error {
			return l.RemoveMember(t.ID, args[0])
		}),
	)

	spaces := teamCommand("spaces <team>", "list team spaces", 1, func(cmd *cobra.Command, l *v1.TeamLogic, t *types.Team, _ []string) error {
		list, err := l.Spaces(t.ID)
		if err != nil {
			return err
		}
		for _, s := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", s.ID, s.Name)
		}
		return nil
	})
	spaces.AddCommand(
		teamCommand("create <team> <name>", "create a space", 2, func(cmd *cobra.Command, l *v1.TeamLogic, t *types.Team, args []string) error {
			space, err := l.CreateSpace(t.ID, types.CreateTeamSpaceRequest{Name: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), space.ID)
			return nil
		}),
		teamCommand("delete <team> <space-id>", "delete a space", 2, func(_ *cobra.Command, l *v1.TeamLogic, t *types.Team, args []string) error {
			return l.DeleteSpace(t.ID, args[0])
		}),
	)

	invite := teamCommand("invite <team>", "create an invite link", 1, func(cmd *cobra.Command, l *v1.TeamLogic, t *types.Team, _ []string) error {
		inv, err := l.Invite(t.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\nexpires %s\n", inv.URL, inv.ExpiresAt)
		return nil
	})

	can := &cobra.Command{
		Use:   "can <team> [action...]",
		Short: "check what you may do in a team",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(opts, func(ctx context.Context, app *core.Core) error {
				l := v1.NewTeamLogic(ctx, app)
				// a team we may not view still has an id to check against
				teamID := args[0]
				if team, err := l.Resolve(args[0]); err == nil {
					teamID = team.ID
				}
				result, err := l.Can(teamID, args[1:]...)
				if err != nil {
					return err
				}
				actions := lo.Keys(result)
				sort.Strings(actions)
				for _, action := range actions {
					fmt.Fprintf(cmd.OutOrStdout(), "%-14s %t\n", action, result[action])
				}
				return nil
			})
		},
	}

	cmd.AddCommand(list, create, show, update, remove, members, spaces, invite, can)
	return cmd
}
