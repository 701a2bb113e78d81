package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/organizer"
	"github.com/pageza/mealmate/backend/internal/settings"
	"github.com/pageza/mealmate/backend/internal/shopping"
)

const dateLayout = "2006-01-02"

func renderBuckets(w io.Writer, buckets []organizer.Bucket, exp *organizer.Expansion) {
	if len(buckets) == 0 {
		fmt.Fprintln(w, "No meals.")
		return
	}
	for _, b := range buckets {
		heading := b.Name
		if b.Icon != "" {
			heading = b.Icon + " " + heading
		}
		if !exp.IsOpen(b.Name) {
			fmt.Fprintf(w, "▸ %s (%d)\n", heading, len(b.Meals))
			continue
		}
		fmt.Fprintf(w, "▾ %s (%d)\n", heading, len(b.Meals))
		for _, m := range b.Meals {
			line := "    " + m.Title
			if m.IsToTry {
				line += " [to try]"
			}
			if len(m.Tags) > 0 {
				line += "  #" + strings.Join(m.Tags, " #")
			}
			fmt.Fprintf(w, "%s  (%s)\n", line, m.ID)
		}
	}
	fmt.Fprintf(w, "[%s]\n", exp.ToggleAllLabel())
}

func renderPlans(w io.Writer, title string, plans []model.PlanItem) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(plans))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range plans {
		due := "-"
		if d, ok := p.DueDate(); ok {
			due = d.Format(dateLayout)
		}
		meal := ""
		if p.ConnectedMeal != nil {
			meal = p.ConnectedMeal.Title
		}
		status := ""
		if p.GotEverything {
			status = "got everything"
		} else if n := len(p.MissingIngredients); n > 0 {
			status = fmt.Sprintf("%d missing", n)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", due, p.Title, meal, status, p.ID)
	}
	_ = tw.Flush()
}

func renderShopping(w io.Writer, list []shopping.DateBucket) {
	if len(list) == 0 {
		fmt.Fprintln(w, "Nothing to buy.")
		return
	}
	for _, b := range list {
		if b.NoDate {
			fmt.Fprintln(w, "No date")
		} else {
			fmt.Fprintln(w, b.Date.Format("Mon "+dateLayout))
		}

		if b.Flat() {
			renderIngredients(w, b.Groups[0].Ingredients, "  ")
			continue
		}
		for _, g := range b.Groups {
			fmt.Fprintf(w, "  %s\n", g.PlanTitle)
			renderIngredients(w, g.Ingredients, "    ")
		}
	}
}

func renderIngredients(w io.Writer, ingredients []shopping.Ingredient, indent string) {
	for _, ing := range ingredients {
		box := "[ ]"
		if ing.Checked {
			box = "[x]"
		}
		fmt.Fprintf(w, "%s%s %s  (%s %d)\n", indent, box, ing.Name, ing.PlanID, ing.Index)
	}
}

func renderSettings(w io.Writer, st *settings.State) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "user\t%s\n", st.UserID())
	fmt.Fprintf(tw, "%s\t%t\n", model.SettingDarkMode, st.DarkMode)
	fmt.Fprintf(tw, "%s\t%d\n", model.SettingOwnStartPage, st.OwnStartPage)
	fmt.Fprintf(tw, "%s\t%d\n", model.SettingContactStartPage, st.ContactStartPage)
	fmt.Fprintf(tw, "%s\t%s\n", model.SettingLanguage, st.Settings.Language)
	fmt.Fprintf(tw, "%s\t%s\n", model.SettingMealCategories, categoryList(st.Categories))
	fmt.Fprintf(tw, "%s\t%s\n", model.SettingMealTags, strings.Join(st.Tags, ", "))
	fmt.Fprintf(tw, "%s\t%d\n", model.SettingContacts, len(st.Contacts))
	_ = tw.Flush()
}

func categoryList(categories []model.MealCategory) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
		if c.Icon != nil && *c.Icon != "" {
			names[i] = *c.Icon + " " + c.Name
		}
	}
	return strings.Join(names, ", ")
}

func renderContacts(w io.Writer, contacts []model.UserSummary) {
	if len(contacts) == 0 {
		fmt.Fprintln(w, "No contacts.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range contacts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Nickname, c.Country)
	}
	_ = tw.Flush()
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}
