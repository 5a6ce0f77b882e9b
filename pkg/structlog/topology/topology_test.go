package topology_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nessig/go-structlog/pkg/structlog"
	"github.com/nessig/go-structlog/pkg/structlog/topology"
)

type captureDrain struct {
	mu   sync.Mutex
	msgs []string
}

func (c *captureDrain) Log(rec *structlog.Record, _ structlog.KV) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, rec.Msg)

	return nil
}

func (c *captureDrain) messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.msgs...)
}

func TestAddDrainValidation(t *testing.T) {
	topo := topology.New()

	err := topo.AddDrain("", structlog.Discard)
	assert.ErrorIs(t, err, topology.ErrNameMustBeSet)

	err = topo.AddDrain("root", nil)
	assert.ErrorIs(t, err, structlog.ErrDrainMustBeSet)

	require.NoError(t, topo.AddDrain("root", structlog.Discard))
	err = topo.AddDrain("root", structlog.Discard)
	assert.Error(t, err)
}

func TestAddRouteRejectsCycle(t *testing.T) {
	topo := topology.New()
	require.NoError(t, topo.AddDrain("a", structlog.Discard))
	require.NoError(t, topo.AddDrain("b", structlog.Discard))
	require.NoError(t, topo.AddDrain("c", structlog.Discard))

	require.NoError(t, topo.AddRoute("a", "b"))
	require.NoError(t, topo.AddRoute("b", "c"))

	err := topo.AddRoute("c", "a")
	assert.ErrorIs(t, err, topology.ErrRouteWouldLoop)

	err = topo.AddRoute("a", "a")
	assert.ErrorIs(t, err, topology.ErrRouteWouldLoop)
}

func TestBuildFanOut(t *testing.T) {
	root := &captureDrain{}
	audit := &captureDrain{}
	archive := &captureDrain{}

	topo := topology.New()
	require.NoError(t, topo.AddDrain("root", root))
	require.NoError(t, topo.AddDrain("audit", audit))
	require.NoError(t, topo.AddDrain("archive", archive))
	require.NoError(t, topo.AddRoute("root", "audit"))
	require.NoError(t, topo.AddRoute("audit", "archive"))

	drain, err := topo.Build("root")
	require.NoError(t, err)

	log, err := structlog.New(drain)
	require.NoError(t, err)
	require.NoError(t, log.Info(context.Background(), "hello"))

	assert.Equal(t, []string{"hello"}, root.messages())
	assert.Equal(t, []string{"hello"}, audit.messages())
	assert.Equal(t, []string{"hello"}, archive.messages())
}

func TestBuildLeafIsBareDrain(t *testing.T) {
	leaf := &captureDrain{}
	topo := topology.New()
	require.NoError(t, topo.AddDrain("leaf", leaf))

	drain, err := topo.Build("leaf")
	require.NoError(t, err)
	require.NoError(t, drain.Log(structlog.NewRecord(context.Background(), structlog.LevelInfo, "m"), nil))
	assert.Equal(t, []string{"m"}, leaf.messages())
}

func TestBuildUnknownDrain(t *testing.T) {
	topo := topology.New()
	_, err := topo.Build("missing")
	assert.ErrorIs(t, err, topology.ErrUnknownDrain)
}

func TestNames(t *testing.T) {
	topo := topology.New()
	require.NoError(t, topo.AddDrain("b", structlog.Discard))
	require.NoError(t, topo.AddDrain("a", structlog.Discard))

	names, err := topo.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestDOT(t *testing.T) {
	topo := topology.New()
	require.NoError(t, topo.AddDrain("root", structlog.Discard))
	require.NoError(t, topo.AddDrain("audit", structlog.Discard))
	require.NoError(t, topo.AddRoute("root", "audit"))

	var buf bytes.Buffer
	require.NoError(t, topo.DOT(&buf))

	out := buf.String()
	assert.Contains(t, out, "strict digraph {")
	assert.Contains(t, out, `"audit";`)
	assert.Contains(t, out, `"root";`)
	assert.Contains(t, out, `"root" -> "audit";`)
}
