package ci

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type workflow struct {
	Name string            `yaml:"name"`
	On   []string          `yaml:"on"`
	Env  map[string]string `yaml:"env"`
	Jobs map[string]job    `yaml:"jobs"`
}

type job struct {
	If       string   `yaml:"if"`
	RunsOn   string   `yaml:"runs-on"`
	Strategy strategy `yaml:"strategy"`
	Steps    []step   `yaml:"steps"`
}

type strategy struct {
	FailFast *bool  `yaml:"fail-fast"`
	Matrix   matrix `yaml:"matrix"`
}

type matrix struct {
	Go       []string `yaml:"go"`
	Features []string `yaml:"features"`
}

type step struct {
	Uses string            `yaml:"uses"`
	With map[string]string `yaml:"with"`
	Run  string            `yaml:"run"`
}

func loadWorkflow(t *testing.T) workflow {
	t.Helper()

	raw, err := os.ReadFile(filepath.Join("..", "..", ".github", "workflows", "ci.yml"))
	require.NoError(t, err)

	var wf workflow
	require.NoError(t, yaml.Unmarshal(raw, &wf))

	return wf
}

func TestTriggers(t *testing.T) {
	wf := loadWorkflow(t)
	assert.Equal(t, []string{"push", "pull_request"}, wf.On)
}

func TestGuardSkipsOwnRepoPullRequests(t *testing.T) {
	wf := loadWorkflow(t)
	test, ok := wf.Jobs["test"]
	require.True(t, ok)

	want := "github.event_name != 'pull_request' || " +
		"github.event.pull_request.head.repo.full_name != github.repository"
	assert.Equal(t, want, test.If)
}

func TestMatrix(t *testing.T) {
	wf := loadWorkflow(t)
	test := wf.Jobs["test"]

	require.NotNil(t, test.Strategy.FailFast)
	assert.False(t, *test.Strategy.FailFast)

	assert.Len(t, test.Strategy.Matrix.Go, 3)
	assert.Equal(t, []string{
		"",
		"nestedvalues",
		"dynamickeys",
		"nestedvalues dynamickeys",
	}, test.Strategy.Matrix.Features)

	// One job per (version, features) pair.
	jobs := len(test.Strategy.Matrix.Go) * len(test.Strategy.Matrix.Features)
	assert.Equal(t, 12, jobs)
}

func TestMatrixMinimumMatchesGoMod(t *testing.T) {
	wf := loadWorkflow(t)
	test := wf.Jobs["test"]
	require.NotEmpty(t, test.Strategy.Matrix.Go)
	msrv := test.Strategy.Matrix.Go[0]

	raw, err := os.ReadFile(filepath.Join("..", "..", "go.mod"))
	require.NoError(t, err)

	var directive string
	for _, line := range strings.Split(string(raw), "\n") {
		if rest, ok := strings.CutPrefix(line, "go "); ok {
			directive = strings.TrimSpace(rest)
			break
		}
	}
	require.NotEmpty(t, directive)
	assert.True(t, strings.HasPrefix(directive, msrv),
		"matrix minimum %q must match go.mod directive %q", msrv, directive)
}

func TestEnv(t *testing.T) {
	wf := loadWorkflow(t)
	assert.Equal(t, "1", wf.Env["FORCE_COLOR"])
	assert.Equal(t, "-count=1", wf.Env["GOFLAGS"])
}

func TestSteps(t *testing.T) {
	wf := loadWorkflow(t)
	test := wf.Jobs["test"]
	require.Len(t, test.Steps, 3)

	assert.True(t, strings.HasPrefix(test.Steps[0].Uses, "actions/checkout@"))

	assert.True(t, strings.HasPrefix(test.Steps[1].Uses, "actions/setup-go@"))
	assert.Equal(t, "${{ matrix.go }}", test.Steps[1].With["go-version"])

	assert.Equal(t, `go test -tags "${{ matrix.features }}" ./...`, test.Steps[2].Run)
}
