package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "pulse", cmd.Use)
	assert.Contains(t, cmd.Long, "PulseNews REST API")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"login"}, {"logout"}, {"register"}, {"whoami"}, {"roles"},
		{"profile", "show"}, {"profile", "update"}, {"profile", "password"}, {"profile", "activities"},
		{"articles", "list"}, {"articles", "show"}, {"articles", "mine"}, {"articles", "create"},
		{"articles", "edit"}, {"articles", "export"}, {"articles", "publish"}, {"articles", "delete"},
		{"categories"}, {"tags"},
		{"comments", "list"}, {"comments", "add"}, {"comments", "delete"},
		{"react"},
		{"bookmarks", "list"}, {"bookmarks", "toggle"}, {"bookmarks", "remove"}, {"bookmarks", "check"},
		{"config", "show"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "api-url", "session-db"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestWriteCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"create", "edit"} {
		sub, _, err := cmd.Find([]string{"articles", name})
		require.NoError(t, err)

		fileFlag := sub.Flags().Lookup("file")
		require.NotNil(t, fileFlag)
		assert.Equal(t, "f", fileFlag.Shorthand)
		assert.NotNil(t, sub.Flags().Lookup("cover"))
	}
}

func TestDeleteCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, path := range [][]string{{"articles", "delete"}, {"comments", "delete"}} {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err)

		yes := sub.Flags().Lookup("yes")
		require.NotNil(t, yes)
		assert.Equal(t, "false", yes.DefValue)
	}
}

func TestArticlesListFlags(t *testing.T) {
	cmd := NewRootCommand()
	sub, _, err := cmd.Find([]string{"articles", "list"})
	require.NoError(t, err)

	assert.Equal(t, "1", sub.Flags().Lookup("page").DefValue)
	assert.Equal(t, "20", sub.Flags().Lookup("page-size").DefValue)
	for _, name := range []string{"search", "category", "tags", "author", "ordering"} {
		assert.NotNil(t, sub.Flags().Lookup(name), name)
	}
}

func TestFormatValidation(t *testing.T) {
	// Test valid formats
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	// Test invalid formats
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	h := newHarness(t)
	res := h.run(t, "", "--format", "invalid", "articles", "list")

	assert.Equal(t, ExitCommandError, res.code)
	assert.Contains(t, res.stderr, "invalid format")
	assert.Empty(t, h.fake.Requests())
}

func TestArgumentErrorsAreCommandErrors(t *testing.T) {
	h := newHarness(t)
	res := h.run(t, "", "articles", "show")

	assert.Equal(t, ExitCommandError, res.code)
	assert.Contains(t, res.stderr, "Error: accepts 1 arg(s)")
}

func TestRequiredFileFlag(t *testing.T) {
	h := newHarness(t)
	res := h.run(t, "", "articles", "create")

	assert.Equal(t, ExitCommandError, res.code)
	assert.Contains(t, res.stderr, `required flag(s) "file" not set`)
}
