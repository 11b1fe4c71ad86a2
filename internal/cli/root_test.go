package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeSchema(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "mdschema v"), "output = %q", out)
}

func TestCompileCommand(t *testing.T) {
	path := writeSchema(t, "shop.md", `## User
- Id: int @primary_key
- Email: string @unique

## Order
- Id: int @primary_key
- UserId: int @reference(User)
`)

	out, _, err := runCommand(t, "compile", path)
	require.NoError(t, err)
	assert.Contains(t, out, "shop: 2 model(s)")
}

func TestCompileCommandFailure(t *testing.T) {
	path := writeSchema(t, "bad.md", `## Order
- UserId: int @reference(Ghost)
`)

	_, errOut, err := runCommand(t, "compile", path)
	require.Error(t, err)
	assert.Contains(t, errOut, "Ghost")
}

func TestLintCommandReportsConflicts(t *testing.T) {
	path := writeSchema(t, "social.md", `## User
- Id: int @primary_key

## Follow
- Id: int @primary_key
- FollowerId: int @reference(User)
- FollowingId: int @reference(User)
`)

	out, _, err := runCommand(t, "lint", path)
	require.NoError(t, err, "conflicts are warnings, not failures")
	assert.Contains(t, out, "cascade-conflict")
}

func TestGraphCommand(t *testing.T) {
	path := writeSchema(t, "shop.md", `## User
- Id: int @primary_key

## Order
- Id: int @primary_key
- UserId: int @reference(User)
`)

	out, _, err := runCommand(t, "graph", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Order.UserId -> User [CASCADE]")
	assert.Contains(t, out, "order: User -> Order")
}

func TestListCommand(t *testing.T) {
	path := writeSchema(t, "shop.md", `## User
- Id: int @primary_key
- Email: string @unique
`)

	out, _, err := runCommand(t, "list", path)
	require.NoError(t, err)
	assert.Contains(t, out, "User")
}
