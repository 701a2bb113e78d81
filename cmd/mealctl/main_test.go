package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/mealmate/backend/internal/api"
	"github.com/pageza/mealmate/backend/internal/service"
	"github.com/pageza/mealmate/backend/internal/testhelpers"
)

type cli struct {
	t      *testing.T
	server string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	db := testhelpers.SetupTestDatabase(t)
	router := testhelpers.NewTestRouter()
	api.RegisterRoutes(router, api.Services{
		Auth:     service.NewAuthService(testhelpers.TestJWTSecret),
		Meals:    service.NewMealService(db),
		Plans:    service.NewPlanService(db),
		Settings: service.NewSettingsService(db, nil),
		Users:    service.NewUserService(db),
		Images:   service.NewImageService(testhelpers.NewMemoryStore(), zap.NewNop()),
		Log:      zap.NewNop(),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &cli{t: t, server: srv.URL}
}

// runWithInput executes mealctl as userID with stdin and returns stdout
func (c *cli) runWithInput(userID, stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCmd(viper.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--server", c.server, "--token", testhelpers.Token(c.t, userID)}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) run(userID string, args ...string) string {
	c.t.Helper()
	out, err := c.runWithInput(userID, "", args...)
	require.NoError(c.t, err, out)
	return out
}

var idPattern = regexp.MustCompile(`\(([0-9a-f]{8}-[0-9a-f-]{27})\)`)

func lastID(t *testing.T, out string) string {
	t.Helper()
	m := idPattern.FindAllStringSubmatch(out, -1)
	require.NotEmpty(t, m, out)
	return m[len(m)-1][1]
}

func TestSettingsGetCreatesDefaults(t *testing.T) {
	c := newCLI(t)

	out := c.run("alice", "settings", "get")
	assert.Contains(t, out, "alice")
	assert.Regexp(t, `darkMode\s+false`, out)
	assert.Regexp(t, `language\s+en`, out)

	out = c.run("alice", "settings", "set", "darkMode", "true")
	assert.Regexp(t, `darkMode\s+true`, out)
	out = c.run("alice", "settings", "set", "language", "de")
	assert.Regexp(t, `language\s+de`, out)

	_, err := c.runWithInput("alice", "", "settings", "set", "fontSize", "3")
	assert.Error(t, err)
}

func TestMealsAreOrganized(t *testing.T) {
	c := newCLI(t)

	assert.Contains(t, c.run("alice", "categories", "add", "Breakfast", "--icon", "sun"), "Saved.")
	_, err := c.runWithInput("alice", "", "categories", "add", "Breakfast")
	assert.ErrorContains(t, err, "already present")
	c.run("alice", "meals", "add", "--title", "Pancakes", "--category", "Breakfast", "-t", "quick,sweet")
	c.run("alice", "meals", "add", "--title", "Soup")
	c.run("alice", "meals", "add", "--title", "Porridge", "--category", "Breakfast", "--to-try")

	out := c.run("alice", "meals")
	assert.Contains(t, out, "▾ sun Breakfast (2)")
	assert.Contains(t, out, "▾ Meals without category (1)")
	assert.Less(t, strings.Index(out, "Pancakes"), strings.Index(out, "Porridge"))
	assert.Less(t, strings.Index(out, "Breakfast"), strings.Index(out, "Meals without category"))
	assert.Contains(t, out, "Porridge [to try]")
	assert.Contains(t, out, "[collapse all]")

	out = c.run("alice", "meals", "--tag", "quick")
	assert.Contains(t, out, "Pancakes")
	assert.NotContains(t, out, "Meals without category")

	out = c.run("alice", "meals", "--collapse-all")
	assert.Contains(t, out, "▸ sun Breakfast (2)")
	assert.NotContains(t, out, "Pancakes")
	assert.Contains(t, out, "[expand all]")

	out = c.run("alice", "meals", "--collapse", "Breakfast")
	assert.Contains(t, out, "▸ sun Breakfast (2)")
	assert.Contains(t, out, "Soup")
	assert.Contains(t, out, "[collapse all]")

	assert.Equal(t, "quick\nsweet\n", c.run("alice", "meals", "tags"))
}

func TestMealEditAndOwnership(t *testing.T) {
	c := newCLI(t)

	id := lastID(t, c.run("alice", "meals", "add", "--title", "Stew"))
	assert.Contains(t, c.run("alice", "meals", "edit", id, "--title", "Beef stew"), "Beef stew")

	_, err := c.runWithInput("bob", "", "meals", "edit", id, "--title", "Mine now")
	assert.ErrorContains(t, err, "another user")

	out := c.run("bob", "meals", "--owner", "alice")
	assert.Contains(t, out, "Beef stew")
}

func TestMealDeleteWithUndo(t *testing.T) {
	c := newCLI(t)
	keep := lastID(t, c.run("alice", "meals", "add", "--title", "Keep me"))
	drop := lastID(t, c.run("alice", "meals", "add", "--title", "Drop me"))

	out, err := c.runWithInput("alice", "\n", "meals", "delete", keep, "--undo-window", "2s")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored")

	out, err = c.runWithInput("alice", "", "meals", "delete", drop, "--undo-window", "50ms")
	require.NoError(t, err)
	assert.NotContains(t, out, "Restored")

	out = c.run("alice", "meals")
	assert.Contains(t, out, "Keep me")
	assert.NotContains(t, out, "Drop me")
}

func TestPlansAndShopping(t *testing.T) {
	c := newCLI(t)

	curry := lastID(t, c.run("alice", "plans", "add", "--title", "Curry", "--date", "2099-01-02", "-m", "rice,coconut milk"))
	c.run("alice", "plans", "add", "--title", "Salad", "--date", "2099-01-02", "-m", "feta")
	c.run("alice", "plans", "add", "--title", "Someday", "-m", "saffron")
	c.run("alice", "plans", "add", "--title", "Old", "--date", "2000-01-01", "-m", "stale bread")

	out := c.run("alice", "plans")
	assert.Contains(t, out, "Upcoming (3)")
	assert.NotContains(t, out, "Old")
	assert.Contains(t, c.run("alice", "plans", "--past"), "Past (1)")

	out = c.run("alice", "shopping")
	assert.Contains(t, out, "2099-01-02")
	assert.Contains(t, out, "  Curry\n")
	assert.Contains(t, out, "    [ ] rice")
	assert.Contains(t, out, "No date\n  [ ] saffron")
	assert.NotContains(t, out, "stale bread")
	assert.Less(t, strings.Index(out, "2099-01-02"), strings.Index(out, "No date"))

	assert.Equal(t, "coconut milk checked\n", c.run("alice", "check", curry, "1"))
	assert.Contains(t, c.run("alice", "shopping"), "[x] coconut milk")
	assert.Equal(t, "coconut milk unchecked\n", c.run("alice", "check", curry, "1"))

	_, err := c.runWithInput("alice", "", "check", curry, "9")
	assert.Error(t, err)

	assert.Contains(t, c.run("alice", "plans", "got-everything", curry), "got everything = true")
	assert.Contains(t, c.run("alice", "plans"), "got everything")
}

func TestPlanDeleteWithUndo(t *testing.T) {
	c := newCLI(t)
	id := lastID(t, c.run("alice", "plans", "add", "--title", "Tacos"))

	out, err := c.runWithInput("alice", "\n", "plans", "delete", id, "--undo-window", "2s")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored")
	assert.Contains(t, c.run("alice", "plans"), id)

	assert.Contains(t, c.run("alice", "plans", "delete", id, "--undo-window", "0"), `Deleted "Tacos"`)
	assert.NotContains(t, c.run("alice", "plans"), id)
}

func TestTagsAndContacts(t *testing.T) {
	c := newCLI(t)
	c.run("bob", "settings", "get")

	assert.Contains(t, c.run("alice", "tags", "add", "vegan"), "Saved.")
	assert.Equal(t, "vegan\n", c.run("alice", "tags"))
	assert.Contains(t, c.run("alice", "tags", "remove", "missing"), "Nothing changed.")
	assert.Contains(t, c.run("alice", "tags", "remove", "vegan"), "Saved.")

	assert.Contains(t, c.run("alice", "contacts"), "No contacts.")
	assert.Contains(t, c.run("alice", "contacts", "search", "bo"), "bob")
	assert.Contains(t, c.run("alice", "contacts", "add", "bob"), "Saved.")
	assert.Contains(t, c.run("alice", "contacts", "add", "bob"), "Nothing changed.")
	assert.Contains(t, c.run("alice", "contacts"), "bob")
	assert.Contains(t, c.run("alice", "contacts", "refresh"), "Nothing changed.")
}

func TestDashboard(t *testing.T) {
	c := newCLI(t)
	c.run("alice", "meals", "add", "--title", "Pancakes")
	c.run("alice", "plans", "add", "--title", "Brunch", "--date", "2099-03-04", "-m", "eggs")

	out := c.run("alice", "dashboard")
	assert.Contains(t, out, "Meals (1)")
	assert.Contains(t, out, "▸ Meals without category (1)")
	assert.Contains(t, out, "Upcoming (1)")
	assert.Contains(t, out, "[ ] eggs")
}

func TestUserIsRequired(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cmd := newRootCmd(viper.New())
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--server", "http://localhost:1", "plans"})
	assert.ErrorContains(t, cmd.Execute(), "no user")
}

func TestConfigFileAndEnvironment(t *testing.T) {
	c := newCLI(t)
	c.run("alice", "meals", "add", "--title", "From flags")

	cfg := filepath.Join(t.TempDir(), "mealctl.yaml")
	content := "server: " + c.server + "\ntoken: " + testhelpers.Token(t, "alice") + "\ntimeout: 5s\n"
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o600))

	cmd := newRootCmd(viper.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", cfg, "meals"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "From flags")

	t.Setenv("MEALCTL_SERVER", c.server)
	t.Setenv("MEALCTL_TOKEN", testhelpers.Token(t, "alice"))
	cmd = newRootCmd(viper.New())
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"meals"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "From flags")

	cmd = newRootCmd(viper.New())
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "meals"})
	assert.Error(t, cmd.Execute())
}

func TestUserFromToken(t *testing.T) {
	assert.Equal(t, "alice", userFromToken(testhelpers.Token(t, "alice")))
	assert.Equal(t, "", userFromToken(""))
	assert.Equal(t, "", userFromToken("not-a-token"))
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	a := &app{now: func() time.Time { return time.Date(2024, 5, 10, 22, 0, 0, 0, loc) }}
	assert.Equal(t, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC), a.today())
}
