package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentledger/internal/config"
	"rentledger/internal/core"
	"rentledger/internal/infra/kv/memory"
	"rentledger/internal/kv"
)

func testConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Driver: string(kv.DriverMemory), Namespace: core.DefaultNamespace},
		Log:     config.LogConfig{Level: "error", Format: "text"},
		Metrics: config.MetricsConfig{Backend: config.MetricsNone},
		Profile: config.ProfileConfig{Currency: "USD"},
	}
}

type harness struct {
	store *memory.Store
	cfg   *config.Config
}

func newHarness() *harness {
	return &harness{store: memory.New(), cfg: testConfig()}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(Options{
		Store:  h.store,
		Config: h.cfg,
		Clock:  core.ClockFunc(func() time.Time { return time.Date(2024, time.September, 20, 0, 0, 0, 0, time.UTC) }),
		Out:    &out,
		Err:    &errOut,
	}, args)
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	root, _ := newRootCmd(Options{})
	assert.Equal(t, "rentledger", root.Use)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("trace"))
	for _, path := range [][]string{{"property", "add"}, {"property", "list"}, {"tenant", "add"}, {"payment", "mark"}, {"calendar"}, {"export"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], strings.Fields(cmd.Use)[0])
	}
}

func TestSessionCommands(t *testing.T) {
	h := newHarness()
	out, err := h.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "not signed in")

	out, err = h.run(t, "signin", "--email", "me@example.com", "--password", "x")
	require.NoError(t, err)
	assert.Contains(t, out, "John Landlord")

	out, err = h.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "me@example.com")

	_, err = h.run(t, "signout")
	require.NoError(t, err)
	out, err = h.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "not signed in")
}

func TestPropertyFlow(t *testing.T) {
	h := newHarness()
	out, err := h.run(t, "property", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Sunset Apartments")
	assert.Contains(t, out, "50%")

	out, err = h.run(t, "property", "add", "--title", "Harbor View", "--address", "9 Pier", "--city", "Boston")
	require.NoError(t, err)
	assert.Contains(t, out, "added property Harbor View")

	out, err = h.run(t, "property", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no units")

	_, err = h.run(t, "property", "add", "--title", "No City", "--address", "1 Road")
	require.Error(t, err)

	out, err = h.run(t, "property", "show", "prop-1")
	require.NoError(t, err)
	assert.Contains(t, out, "John Smith")
	assert.Contains(t, out, "vacant")
	assert.Contains(t, out, "ABC Plumbing")

	_, err = h.run(t, "property", "show", "ghost")
	require.EqualError(t, err, "property ghost not found")
}

func TestTenantLeaseAndPayments(t *testing.T) {
	h := newHarness()
	out, err := h.run(t, "tenant", "add", "--name", "Mia Park", "--phone", "555", "--email", "mia@example.com",
		"--unit", "unit-2", "--start", "2024-09-01", "--end", "2025-08-31", "--rent", "900", "--deposit", "900", "--due-day", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "added tenant Mia Park")

	_, err = h.run(t, "payment", "mark", "--lease", "lease-2", "--amount", "2500")
	require.Error(t, err, "method is required when marking rent paid")

	_, err = h.run(t, "payment", "mark", "--lease", "lease-2", "--amount", "2500", "--method", "Check")
	require.NoError(t, err)

	out, err = h.run(t, "payment", "add", "--lease", "lease-1", "--amount", "1200")
	require.NoError(t, err)
	assert.Contains(t, out, "1200.00")

	out, err = h.run(t, "lease", "show", "lease-1")
	require.NoError(t, err)
	assert.Contains(t, out, "total paid: 3600.00")
	assert.Contains(t, out, "Cash")

	out, err = h.run(t, "tenant", "show", "tenant-2")
	require.NoError(t, err)
	assert.Contains(t, out, "Downtown Lofts")
	assert.Contains(t, out, "total paid: 5000.00")

	out, err = h.run(t, "calendar", "--month", "2024-09")
	require.NoError(t, err)
	assert.Contains(t, out, "Rent Due - Mia Park")
	assert.Contains(t, out, "Lease Start - Mia Park")
	assert.Equal(t, 1, strings.Count(out, "unpaid"), "only the new lease has no September payment")
}

func TestSummaryAndTransactions(t *testing.T) {
	h := newHarness()
	_, err := h.run(t, "expense", "add", "--property", "prop-2", "--amount", "25", "--category", "Supplies", "--date", "2024-09-15")
	require.NoError(t, err)

	out, err := h.run(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "income: 4900.00")
	assert.Contains(t, out, "expenses: 550.00")
	assert.Contains(t, out, "net: 4350.00")

	out, err = h.run(t, "transactions", "--type", "expense", "--limit", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Supplies")
	assert.NotContains(t, out, "Rent Payment")

	_, err = h.run(t, "transactions", "--type", "refunds")
	require.Error(t, err)
}

func TestExportBackupRestore(t *testing.T) {
	h := newHarness()
	dir := t.TempDir()

	xlsx := filepath.Join(dir, "ledger.xlsx")
	_, err := h.run(t, "export", "--out", xlsx)
	require.NoError(t, err)
	info, err := os.Stat(xlsx)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	backup := filepath.Join(dir, "backup.json")
	out, err := h.run(t, "backup", "--out", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "backed up 6 keys")

	fresh := newHarness()
	out, err = fresh.run(t, "restore", "--in", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "restored 6 keys")
}

func TestPrometheusTextfile(t *testing.T) {
	h := newHarness()
	path := filepath.Join(t.TempDir(), "rentledger.prom")
	h.cfg.Metrics = config.MetricsConfig{Backend: config.MetricsPrometheus, Textfile: path}
	_, err := h.run(t, "property", "list")
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `operation="properties.load"`)
}

func TestFailedCommandStillWritesMetrics(t *testing.T) {
	h := newHarness()
	path := filepath.Join(t.TempDir(), "rentledger.prom")
	h.cfg.Metrics = config.MetricsConfig{Backend: config.MetricsPrometheus, Textfile: path}
	_, err := h.run(t, "payment", "mark", "--lease", "nope", "--amount", "100", "--method", "Cash")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lease nope not found")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `operation="finance.load"`)
}

type closeTrackingStore struct {
	kv.Store
	closed int
}

func (s *closeTrackingStore) Close() error {
	s.closed++
	return s.Store.Close()
}

func TestTeardownClosesOwnedStoreOnce(t *testing.T) {
	store := &closeTrackingStore{Store: memory.New()}
	e := &env{cfg: testConfig(), store: store, ownsStore: true}
	require.NoError(t, e.teardown())
	require.NoError(t, e.teardown())
	assert.Equal(t, 1, store.closed)

	assert.NoError(t, (&env{}).teardown())
}
