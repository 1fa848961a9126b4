package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "finlens-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "finlens")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/finlens")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runFinlens(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func initDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runFinlens(t, "init", dir, "--no-git")
	require.NoError(t, err, out)
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := initDir(t)

	for _, d := range []string{"import", "state", "logs"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	for _, f := range []string{"finlens.yaml", "taxonomy.yaml"} {
		_, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, "file %s should exist", f)
	}
}

func TestInit_Config(t *testing.T) {
	dir := initDir(t)

	data, err := os.ReadFile(filepath.Join(dir, "finlens.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "guardrail_pct: 0.2")
	assert.Contains(t, contents, "default_net: 10000000")
}

func TestInit_Taxonomy(t *testing.T) {
	dir := initDir(t)

	data, err := os.ReadFile(filepath.Join(dir, "taxonomy.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Food")
	assert.Contains(t, contents, "Lunch")
	assert.Contains(t, contents, "name: Income")
	assert.Contains(t, contents, "Salary")
}
