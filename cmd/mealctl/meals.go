package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pageza/mealmate/backend/internal/client"
	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/organizer"
)

func (a *app) mealsCmd() *cobra.Command {
	var (
		owner       string
		tags        []string
		collapse    []string
		collapseAll bool
	)
	cmd := &cobra.Command{
		Use:   "meals",
		Short: "List meals grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if owner == "" {
				owner = a.userID
			}
			st, err := a.bridge.Get(ctx, a.userID)
			if err != nil {
				return err
			}
			meals, err := a.api.MealsOfUser(ctx, owner)
			if err != nil {
				return err
			}

			buckets := organizer.Organize(meals, tags, st.CategoryIcons)
			exp := organizer.NewExpansion()
			exp.Sync(buckets)
			if collapseAll {
				exp.SetAll(false)
			}
			for _, name := range collapse {
				exp.Toggle(name)
			}
			renderBuckets(cmd.OutOrStdout(), buckets, exp)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "list the meals of another user")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "only meals carrying every given tag")
	cmd.Flags().StringSliceVar(&collapse, "collapse", nil, "categories to show collapsed")
	cmd.Flags().BoolVar(&collapseAll, "collapse-all", false, "show every category collapsed")

	cmd.AddCommand(a.mealTagsCmd(), a.mealAddCmd(), a.mealEditCmd(), a.mealDeleteCmd())
	return cmd
}

func (a *app) mealTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the tags used by your meals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			meals, err := a.api.MealsOfUser(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			for _, t := range organizer.CollectTags(meals) {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

type mealFlags struct {
	title    string
	category string
	link     string
	comment  string
	tags     []string
	toTry    bool
}

func (f *mealFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "meal title")
	cmd.Flags().StringVar(&f.category, "category", "", "meal category")
	cmd.Flags().StringVar(&f.link, "link", "", "recipe link")
	cmd.Flags().StringVar(&f.comment, "comment", "", "free text comment")
	cmd.Flags().StringSliceVarP(&f.tags, "tag", "t", nil, "meal tags")
	cmd.Flags().BoolVar(&f.toTry, "to-try", false, "mark the meal as one to try")
}

// apply copies the flags that were set onto m
func (f *mealFlags) apply(cmd *cobra.Command, m *model.Meal) {
	changed := cmd.Flags().Changed
	if changed("title") {
		m.Title = f.title
	}
	if changed("category") {
		if c := strings.TrimSpace(f.category); c != "" {
			m.Category = &c
		} else {
			m.Category = nil
		}
	}
	if changed("link") {
		m.Link = f.link
	}
	if changed("comment") {
		m.Comment = f.comment
	}
	if changed("tag") {
		m.Tags = model.JSONList[string](f.tags)
	}
	if changed("to-try") {
		m.IsToTry = f.toTry
	}
}

func (a *app) mealAddCmd() *cobra.Command {
	var f mealFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a meal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			meal := &model.Meal{UserID: a.userID}
			f.apply(cmd, meal)
			created, err := a.api.AddMeal(cmd.Context(), meal)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", created.Title, created.ID)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *app) mealEditCmd() *cobra.Command {
	var f mealFlags
	cmd := &cobra.Command{
		Use:   "edit <mealId>",
		Short: "Change fields of one of your meals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid meal id %q", args[0])
			}
			meal, err := a.api.Meal(cmd.Context(), id)
			if err != nil {
				return err
			}
			f.apply(cmd, meal)
			updated, err := a.api.EditMeal(cmd.Context(), a.userID, meal)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q\n", updated.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) mealDeleteCmd() *cobra.Command {
	var window time.Duration
	cmd := &cobra.Command{
		Use:   "delete <mealId>",
		Short: "Delete a meal and its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid meal id %q", args[0])
			}
			if window <= 0 {
				deleted, err := a.api.DeleteMeal(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", deleted.Title)
				return nil
			}

			meal, err := a.api.Meal(cmd.Context(), id)
			if err != nil {
				return err
			}
			trash := client.NewTrash(a.api, window)
			trash.DeleteMeal(id)
			return offerUndo(cmd.Context(), cmd, trash, fmt.Sprintf("%q", meal.Title))
		},
	}
	cmd.Flags().DurationVar(&window, "undo-window", client.DefaultUndoWindow, "how long the deletion can be undone, 0 deletes at once")
	return cmd
}
