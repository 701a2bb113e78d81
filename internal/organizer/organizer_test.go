package organizer

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealmate/backend/internal/model"
)

func meal(title, category string, tags ...string) model.Meal {
	m := model.Meal{ID: uuid.New(), Title: title, Tags: model.JSONList[string](tags)}
	if category != "" {
		m.Category = &category
	}
	return m
}

func titles(b Bucket) []string {
	out := make([]string, len(b.Meals))
	for i, m := range b.Meals {
		out[i] = m.Title
	}
	return out
}

func TestOrganizeGroupsByCategory(t *testing.T) {
	a := meal("A", "Breakfast")
	b := meal("B", "")
	c := meal("C", "Breakfast")

	buckets := Organize([]model.Meal{a, b, c}, nil, map[string]string{"Breakfast": "sun"})

	require.Len(t, buckets, 2)
	assert.Equal(t, "Breakfast", buckets[0].Name)
	assert.Equal(t, "sun", buckets[0].Icon)
	assert.Equal(t, []string{"A", "C"}, titles(buckets[0]))
	assert.Equal(t, UncategorizedName, buckets[1].Name)
	assert.True(t, buckets[1].Uncategorized)
	assert.Equal(t, []string{"B"}, titles(buckets[1]))
}

func TestOrganizeSortsAndKeepsUncategorizedLast(t *testing.T) {
	blank := " "
	meals := []model.Meal{
		meal("1", "Zucchini"),
		meal("2", ""),
		meal("3", "Apples"),
		{ID: uuid.New(), Title: "4", Category: &blank},
		meal("5", "Mains"),
	}

	buckets := Organize(meals, nil, nil)
	var names []string
	for _, b := range buckets {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Apples", "Mains", "Zucchini", UncategorizedName}, names)
	assert.Equal(t, []string{"2", "4"}, titles(buckets[3]))
	assert.Equal(t, "", buckets[0].Icon)
}

func TestOrganizeFiltersByEveryTag(t *testing.T) {
	meals := []model.Meal{
		meal("quick vegan", "Dinner", "quick", "vegan"),
		meal("quick", "Dinner", "quick"),
		meal("vegan", "", "vegan"),
	}

	buckets := Organize(meals, []string{"vegan", "quick"}, nil)
	require.Len(t, buckets, 1)
	assert.Equal(t, []string{"quick vegan"}, titles(buckets[0]))

	assert.Empty(t, Organize(meals, []string{"missing"}, nil))
	assert.Empty(t, Organize(nil, nil, nil))
}

func TestOrganizeFilterProperty(t *testing.T) {
	vocabulary := []string{"a", "b", "c", "d"}
	rng := rand.New(rand.NewSource(7))
	pick := func() []string {
		var out []string
		for _, t := range vocabulary {
			if rng.Intn(2) == 0 {
				out = append(out, t)
			}
		}
		return out
	}

	for i := 0; i < 200; i++ {
		var meals []model.Meal
		for j := 0; j < 6; j++ {
			meals = append(meals, meal(uuid.NewString(), vocabulary[rng.Intn(len(vocabulary))], pick()...))
		}
		filter := pick()

		kept := map[uuid.UUID]bool{}
		for _, b := range Organize(meals, filter, nil) {
			for _, m := range b.Meals {
				kept[m.ID] = true
			}
		}
		for _, m := range meals {
			want := true
			for _, f := range filter {
				if !m.HasTag(f) {
					want = false
				}
			}
			require.Equal(t, want, kept[m.ID], "meal tags %v, filter %v", m.Tags, filter)
		}
	}
}

func TestOrganizeIsDeterministic(t *testing.T) {
	meals := []model.Meal{meal("x", "B", "t"), meal("y", "A", "t"), meal("z", "", "t"), meal("w", "A")}
	icons := map[string]string{"A": "a-icon"}

	first := Organize(meals, []string{"t"}, icons)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, Organize(meals, []string{"t"}, icons)); diff != "" {
			t.Fatalf("organize is not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestCollectTags(t *testing.T) {
	meals := []model.Meal{meal("1", "", "soup", "quick"), meal("2", "", "quick"), meal("3", "")}
	assert.Equal(t, []string{"quick", "soup"}, CollectTags(meals))
	assert.Empty(t, CollectTags(nil))
}

func TestExpansion(t *testing.T) {
	e := NewExpansion()
	assert.Equal(t, LabelExpandAll, e.ToggleAllLabel())

	e.Sync([]Bucket{{Name: "A"}, {Name: "B"}})
	assert.True(t, e.IsOpen("A"))
	assert.True(t, e.IsOpen("B"))
	assert.Equal(t, LabelCollapseAll, e.ToggleAllLabel())

	assert.False(t, e.Toggle("A"))
	assert.Equal(t, LabelCollapseAll, e.ToggleAllLabel(), "one bucket is still open")
	assert.False(t, e.Toggle("B"))
	assert.Equal(t, LabelExpandAll, e.ToggleAllLabel())

	e.Sync([]Bucket{{Name: "A"}, {Name: "C"}})
	assert.False(t, e.IsOpen("A"), "known buckets keep their state")
	assert.True(t, e.IsOpen("C"), "new buckets start open")
	assert.False(t, e.IsOpen("B"))
	assert.False(t, e.Toggle("B"), "forgotten buckets are ignored")

	e.ToggleAll()
	assert.False(t, e.IsOpen("C"))
	assert.Equal(t, LabelExpandAll, e.ToggleAllLabel())

	e.SetAll(true)
	assert.True(t, e.IsOpen("A"))
	assert.True(t, e.IsOpen("C"))
}
