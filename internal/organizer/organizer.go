// Package organizer filters meals by tag and groups them into category buckets.
package organizer

import (
	"sort"

	"github.com/pageza/mealmate/backend/internal/model"
)

// UncategorizedName is the display name of the bucket holding meals without a category
const UncategorizedName = "Meals without category"

// Bucket is one category with its meals, in input order
type Bucket struct {
	Name          string
	Icon          string
	Meals         []model.Meal
	Uncategorized bool
}

// Organize keeps the meals carrying every tag of filterTags and groups them
// by category. Buckets are sorted by name with the uncategorized bucket
// last. icons maps category names to display icons; unknown names get "".
func Organize(meals []model.Meal, filterTags []string, icons map[string]string) []Bucket {
	byName := make(map[string]*Bucket)
	var names []string
	var uncategorized *Bucket

	for _, m := range meals {
		if !hasAllTags(&m, filterTags) {
			continue
		}

		name := m.CategoryName()
		if name == "" {
			if uncategorized == nil {
				uncategorized = &Bucket{Name: UncategorizedName, Uncategorized: true}
			}
			uncategorized.Meals = append(uncategorized.Meals, m)
			continue
		}

		b, ok := byName[name]
		if !ok {
			b = &Bucket{Name: name, Icon: icons[name]}
			byName[name] = b
			names = append(names, name)
		}
		b.Meals = append(b.Meals, m)
	}

	sort.Strings(names)
	buckets := make([]Bucket, 0, len(names)+1)
	for _, name := range names {
		buckets = append(buckets, *byName[name])
	}
	if uncategorized != nil {
		buckets = append(buckets, *uncategorized)
	}
	return buckets
}

func hasAllTags(m *model.Meal, tags []string) bool {
	for _, t := range tags {
		if !m.HasTag(t) {
			return false
		}
	}
	return true
}

// CollectTags returns the sorted set of tags used by meals
func CollectTags(meals []model.Meal) []string {
	seen := make(map[string]struct{})
	for _, m := range meals {
		for _, t := range m.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
