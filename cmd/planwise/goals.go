package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caiorodriguesslv/planwise-backend/internal/cli"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage a user's savings goals",
	}
	cmd.PersistentFlags().String("user", "", "owner email")

	cmd.AddCommand(goalsListCmd())
	cmd.AddCommand(goalsSweepCmd())
	return cmd
}

func goalStyle(status model.GoalStatus) func(...string) string {
	switch status {
	case model.GoalAchieved:
		return cli.SuccessStyle.Render
	case model.GoalExpired:
		return cli.ErrorStyle.Render
	default:
		return cli.SubtleStyle.Render
	}
}

func goalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live goals with their progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			ownerID, err := resolveOwner(ctx, svcs, cmd.Flag("user").Value.String())
			if err != nil {
				return err
			}

			goals, err := svcs.goals.List(ctx, ownerID)
			if err != nil {
				return err
			}

			if len(goals) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no goals yet"))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Goals"))
			header := fmt.Sprintf("%-30s %12s %12s %10s %-12s %s", "DESCRIPTION", "SAVED", "TARGET", "PROGRESS", "DEADLINE", "STATUS")
			fmt.Println(cli.TableHeaderStyle.Render(header))
			for i := range goals {
				g := &goals[i]
				fmt.Printf("%-30s %12s %12s %9s%% %-12s %s\n",
					g.Description,
					g.CurrentValue,
					g.TargetValue,
					g.ProgressPercent(),
					g.Deadline.Format("2006-01-02"),
					goalStyle(g.Status)(string(g.Status)),
				)
			}
			return nil
		},
	}
}

func goalsSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-expired",
		Short: "Mark overdue, unachieved goals as expired",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			ownerID, err := resolveOwner(ctx, svcs, cmd.Flag("user").Value.String())
			if err != nil {
				return err
			}

			updated, err := svcs.goals.SweepExpired(ctx, ownerID)
			if err != nil {
				return err
			}

			if updated == 0 {
				fmt.Println(cli.SubtleStyle.Render("nothing to expire"))
				return nil
			}
			fmt.Println(cli.FormatWarning(fmt.Sprintf("expired %d goal(s)", updated)))
			return nil
		},
	}
}
