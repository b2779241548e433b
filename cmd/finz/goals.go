package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ronaldlvm7/finance-app/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goals",
		Aliases: []string{"goal"},
		Short:   "Manage savings goals",
	}

	cmd.AddCommand(goalsAddCmd())
	cmd.AddCommand(goalsListCmd())
	cmd.AddCommand(goalsProgressCmd())

	return cmd
}

func goalsAddCmd() *cobra.Command {
	var (
		target   string
		deadline string
		account  string
		icon     string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			targetAmount, err := parseAmount(target)
			if err != nil {
				return err
			}

			goal := &model.Goal{
				Name:         args[0],
				TargetAmount: targetAmount,
				Icon:         icon,
			}
			if deadline != "" {
				when, err := time.Parse("2006-01-02", deadline)
				if err != nil {
					return fmt.Errorf("invalid deadline %q (expected YYYY-MM-DD): %w", deadline, err)
				}
				goal.Deadline = when
			}
			if account != "" {
				a, err := resolveAccount(ctx, store, account)
				if err != nil {
					return err
				}
				goal.TargetAccountID = a.ID
			}

			if err := engine.AddGoal(ctx, goal); err != nil {
				return err
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Created goal %q (target %s)", goal.Name, targetAmount.StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "target amount (required)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&account, "account", "", "account the savings live in")
	cmd.Flags().StringVar(&icon, "icon", "", "display icon")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func goalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals and progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			goals, err := store.GetGoals(ctx)
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Println(mutedStyle.Render("No goals yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, headerStyle.Render("ID\tNAME\tSAVED\tTARGET\tPROGRESS\tDEADLINE"))
			for i := range goals {
				g := &goals[i]
				deadline := ""
				if !g.Deadline.IsZero() {
					deadline = g.Deadline.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f%%\t%s\n",
					shortID(g.ID), g.Name,
					g.CurrentAmount.StringFixed(2), g.TargetAmount.StringFixed(2),
					g.Progress().InexactFloat64()*100, deadline)
			}
			return w.Flush()
		},
	}
}

func goalsProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <name> <amount>",
		Short: "Add (or with a negative amount, remove) saved money toward a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			goals, err := store.GetGoals(ctx)
			if err != nil {
				return err
			}
			var goal *model.Goal
			for i := range goals {
				if goals[i].ID == args[0] || goals[i].Name == args[0] {
					goal = &goals[i]
					break
				}
			}
			if goal == nil {
				return fmt.Errorf("no goal named %q", args[0])
			}

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			if err := engine.AddGoalProgress(ctx, goal.ID, amount); err != nil {
				return err
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Updated goal %q", goal.Name)))
			return nil
		},
	}
}
