package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/session"
	"github.com/Dooralove/PulseNews/internal/store"
	"github.com/Dooralove/PulseNews/internal/testutil"
)

var (
	editor = &model.User{ID: 2, Username: "ed", FirstName: "Ed", LastName: "Itor", Role: &model.Role{ID: 3, Name: model.RoleEditor}}
	reader = &model.User{ID: 1, Username: "rita", Role: &model.Role{ID: 2, Name: model.RoleReader}}
)

// harness runs pulse commands against a fake API with a private config
// file and session database.
type harness struct {
	fake      *testutil.FakeAPI
	dir       string
	config    string
	sessionDB string
	// env is the process environment seen by the commands.
	env map[string]string
}

type result struct {
	stdout string
	stderr string
	code   int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		fake:      testutil.NewFakeAPI(t),
		dir:       dir,
		config:    filepath.Join(dir, "config.yaml"),
		sessionDB: filepath.Join(dir, "session.db"),
	}
	cfg := fmt.Sprintf("api_url: %s\nsession_db: %s\ntimeout: 5s\n", h.fake.URL(), h.sessionDB)
	require.NoError(t, os.WriteFile(h.config, []byte(cfg), 0o600))
	return h
}

// run executes one invocation with stdin.
func (h *harness) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	cmd := newRootCommand(Env{
		Getenv:     func(k string) string { return h.env[k] },
		Now:        testutil.NewFixedClock(testutil.Epoch).Now,
		TerminalFD: -1,
		RequestIDs: testutil.NewFixedRequestIDs("cli-test"),
	})
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", h.config}, args...))

	code := Execute(context.Background(), cmd)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// login seeds a stored session for u and serves its profile, which the
// session refreshes on start.
func (h *harness) login(t *testing.T, u *model.User) {
	t.Helper()
	h.seed(t, u)
	h.fake.OnJSON("GET", "/auth/profile/", 200, u)
}

// seed stores tokens and the cached user for u.
func (h *harness) seed(t *testing.T, u *model.User) {
	t.Helper()
	st, err := store.Open(h.sessionDB)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.SetMany(ctx, map[string]string{
		session.KeyAccessToken:  "access-" + u.Username,
		session.KeyRefreshToken: "refresh-" + u.Username,
	}))
	require.NoError(t, st.SetJSON(ctx, session.KeyUser, u))
}

func (h *harness) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
