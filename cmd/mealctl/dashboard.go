package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/organizer"
	"github.com/pageza/mealmate/backend/internal/settings"
	"github.com/pageza/mealmate/backend/internal/shopping"
)

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show settings, meals, plans and the shopping list at once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				st    *settings.State
				meals []model.Meal
				plans []model.PlanItem
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				st, err = a.bridge.Get(ctx, a.userID)
				return err
			})
			g.Go(func() error {
				var err error
				meals, err = a.api.MealsOfUser(ctx, a.userID)
				return err
			})
			g.Go(func() error {
				var err error
				plans, err = a.api.PlansOfUser(ctx, a.userID)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			buckets := organizer.Organize(meals, nil, st.CategoryIcons)
			exp := organizer.NewExpansion()
			exp.Sync(buckets)
			exp.SetAll(false)
			fmt.Fprintf(out, "Meals (%d)\n", len(meals))
			renderBuckets(out, buckets, exp)

			_, future := shopping.Partition(plans, a.today())
			fmt.Fprintln(out)
			renderPlans(out, "Upcoming", future)

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Shopping")
			renderShopping(out, shopping.BuildList(future, a.today().Location()))
			return nil
		},
	}
}
