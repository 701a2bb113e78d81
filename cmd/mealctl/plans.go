package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pageza/mealmate/backend/internal/client"
	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/shopping"
)

func (a *app) plansCmd() *cobra.Command {
	var showPast bool
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List upcoming plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plans, err := a.api.PlansOfUser(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			past, future := shopping.Partition(plans, a.today())
			renderPlans(cmd.OutOrStdout(), "Upcoming", future)
			if showPast {
				renderPlans(cmd.OutOrStdout(), "Past", past)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showPast, "past", false, "also list past plans")
	cmd.AddCommand(a.planAddCmd(), a.planDoneCmd(), a.planDeleteCmd())
	return cmd
}

func (a *app) planAddCmd() *cobra.Command {
	var (
		title   string
		date    string
		mealID  string
		missing []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Plan a meal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan := &model.PlanItem{UserID: a.userID, Title: title}
			if date != "" {
				d, err := parseDate(date, time.UTC)
				if err != nil {
					return err
				}
				plan.HasDate, plan.Date = true, &d
			}
			if mealID != "" {
				id, err := uuid.Parse(mealID)
				if err != nil {
					return fmt.Errorf("invalid meal id %q", mealID)
				}
				plan.ConnectedMealID = &id
			}
			for _, name := range missing {
				plan.MissingIngredients = append(plan.MissingIngredients, model.MissingIngredient{Name: name})
			}

			created, err := a.api.AddPlan(cmd.Context(), plan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Planned %q (%s)\n", created.Title, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "plan title")
	cmd.Flags().StringVar(&date, "date", "", "due date, YYYY-MM-DD")
	cmd.Flags().StringVar(&mealID, "meal", "", "id of the meal to cook")
	cmd.Flags().StringSliceVarP(&missing, "missing", "m", nil, "ingredients to buy")
	return cmd
}

func (a *app) planDoneCmd() *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "got-everything <planId>",
		Short: "Mark that every ingredient of a plan is at home",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.plan(cmd, args[0])
			if err != nil {
				return err
			}
			plan.GotEverything = !undo
			if _, err := a.api.EditPlan(cmd.Context(), plan); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q: got everything = %t\n", plan.Title, plan.GotEverything)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "clear the mark instead")
	return cmd
}

func (a *app) planDeleteCmd() *cobra.Command {
	var window time.Duration
	cmd := &cobra.Command{
		Use:   "delete <planId>",
		Short: "Delete a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid plan id %q", args[0])
			}
			if window <= 0 {
				deleted, err := a.api.DeletePlan(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", deleted.Title)
				return nil
			}

			trash := client.NewTrash(a.api, window)
			deleted, err := trash.DeletePlan(cmd.Context(), id)
			if err != nil {
				return err
			}
			return offerUndo(cmd.Context(), cmd, trash, fmt.Sprintf("%q", deleted.Title))
		},
	}
	cmd.Flags().DurationVar(&window, "undo-window", client.DefaultUndoWindow, "how long the deletion can be undone, 0 deletes at once")
	return cmd
}

func (a *app) shoppingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shopping",
		Short: "Show what to buy for upcoming plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plans, err := a.api.PlansOfUser(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			_, future := shopping.Partition(plans, a.today())
			renderShopping(cmd.OutOrStdout(), shopping.BuildList(future, a.today().Location()))
			return nil
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <planId> <index>",
		Short: "Check or uncheck a missing ingredient",
		Long:  "Flips the checked state of one missing ingredient. The index is the one printed by the shopping command.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.plan(cmd, args[0])
			if err != nil {
				return err
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[1])
			}

			toggler := shopping.NewToggler(a.api, nil, a.log)
			if err := toggler.Toggle(cmd.Context(), plan, index); err != nil {
				return err
			}
			ing := plan.MissingIngredients[index]
			state := "unchecked"
			if ing.Checked {
				state = "checked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ing.Name, state)
			return nil
		},
	}
}

func (a *app) plan(cmd *cobra.Command, arg string) (*model.PlanItem, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid plan id %q", arg)
	}
	return a.api.Plan(cmd.Context(), id)
}
