package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/settings"
)

func (a *app) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change your settings",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show your settings, creating the defaults on first use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.bridge.Get(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			renderSettings(cmd.OutOrStdout(), st)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Changes one setting. The value is parsed as JSON and taken as a plain
string when it is not valid JSON, so both of these work:

  mealctl settings set darkMode true
  mealctl settings set language de`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value interface{}
			if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
				value = args[1]
			}
			st, err := a.bridge.Update(cmd.Context(), a.userID, args[0], value)
			if err != nil {
				return err
			}
			renderSettings(cmd.OutOrStdout(), st)
			return nil
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}

func (a *app) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage your meal categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.bridge.Get(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			for _, c := range st.Categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Name, st.CategoryIcons[c.Name])
			}
			return nil
		},
	}

	var icon string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSettings(func(cmd *cobra.Command, st *settings.State, args []string) (*settings.State, error) {
			category := model.MealCategory{Name: args[0]}
			if icon != "" {
				category.Icon = &icon
			}
			return a.bridge.AddCategory(cmd.Context(), st, category)
		}),
	}
	add.Flags().StringVar(&icon, "icon", "", "display icon")

	remove := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a category",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSettings(func(cmd *cobra.Command, st *settings.State, args []string) (*settings.State, error) {
			return a.bridge.RemoveCategory(cmd.Context(), st, args[0])
		}),
	}

	cmd.AddCommand(add, remove)
	return cmd
}

func (a *app) tagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage your tag vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.bridge.Get(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			for _, t := range st.Tags {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <tag>",
			Short: "Add a tag",
			Args:  cobra.ExactArgs(1),
			RunE: a.withSettings(func(cmd *cobra.Command, st *settings.State, args []string) (*settings.State, error) {
				return a.bridge.AddTag(cmd.Context(), st, args[0])
			}),
		},
		&cobra.Command{
			Use:   "remove <tag>",
			Short: "Remove a tag",
			Args:  cobra.ExactArgs(1),
			RunE: a.withSettings(func(cmd *cobra.Command, st *settings.State, args []string) (*settings.State, error) {
				return a.bridge.RemoveTag(cmd.Context(), st, args[0])
			}),
		},
	)
	return cmd
}

func (a *app) contactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List your contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.bridge.Get(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			renderContacts(cmd.OutOrStdout(), st.Contacts)
			return nil
		},
	}

	refresh := &cobra.Command{
		Use:   "refresh",
		Short: "Reload every contact from the user directory",
		Args:  cobra.NoArgs,
		RunE: a.withSettings(func(cmd *cobra.Command, st *settings.State, _ []string) (*settings.State, error) {
			st, err := a.bridge.RefreshContacts(cmd.Context(), st)
			if err != nil {
				return nil, err
			}
			renderContacts(cmd.OutOrStdout(), st.Contacts)
			return st, nil
		}),
	}

	add := &cobra.Command{
		Use:   "add <userId>",
		Short: "Add a user to your contacts",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSettings(func(cmd *cobra.Command, st *settings.State, args []string) (*settings.State, error) {
			for _, c := range st.Contacts {
				if c.ID == args[0] {
					return st, nil
				}
			}
			user, err := a.api.UserByID(cmd.Context(), args[0])
			if err != nil {
				return nil, err
			}
			contacts := append(append([]model.UserSummary(nil), st.Contacts...), *user)
			return a.bridge.Update(cmd.Context(), a.userID, model.SettingContacts, contacts)
		}),
	}

	search := &cobra.Command{
		Use:   "search <nickname>",
		Short: "Find users by nickname",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.api.UsersFromQuery(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderContacts(cmd.OutOrStdout(), users)
			return nil
		},
	}

	cmd.AddCommand(refresh, add, search)
	return cmd
}

// withSettings loads the caller's settings, runs fn and reports the outcome
func (a *app) withSettings(fn func(*cobra.Command, *settings.State, []string) (*settings.State, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		st, err := a.bridge.Get(cmd.Context(), a.userID)
		if err != nil {
			return err
		}
		updated, err := fn(cmd, st, args)
		if err != nil {
			return err
		}
		if updated == st {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved.")
		return nil
	}
}
