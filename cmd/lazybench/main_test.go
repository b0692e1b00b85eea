package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dacapoday/lazy"
	"github.com/dacapoday/lazy/cursor"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	require.Equal(t, 100_000, cfg.Records)
	require.Equal(t, 1_000, cfg.Customers)
	require.Equal(t, 3, cfg.Rounds)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
}

// TestLoadConfigLayers checks flag > env > file precedence.
func TestLoadConfigLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yml")
	yaml := "records: 10\ncustomers: 4\nrounds: 2\nlog:\n  format: json\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("LAZYBENCH_CUSTOMERS", "8")
	t.Setenv("LAZYBENCH_LOG_LEVEL", "debug")

	cfg, err := LoadConfig([]string{"--config", path, "--rounds", "5"})
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Records)
	require.Equal(t, 8, cfg.Customers)
	require.Equal(t, 5, cfg.Rounds)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := LoadConfig([]string{"--log.format", "xml"})
	require.ErrorContains(t, err, "log.format")

	_, err = LoadConfig([]string{"--config", filepath.Join(t.TempDir(), "missing.yml")})
	require.Error(t, err)

	_, err = LoadConfig([]string{"--records", "-1"})
	require.ErrorContains(t, err, "records")
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := &Config{Records: 200, Customers: 20, Rounds: 1, Seed: 7}
	a, b := Generate(cfg), Generate(cfg)
	require.Equal(t, a.Orders, b.Orders)
	require.Equal(t, a.Customers, b.Customers)
	require.Len(t, a.Orders, 200)
}

func TestRun(t *testing.T) {
	cfg := &Config{Records: 500, Customers: 30, Rounds: 1, Seed: 3}
	cfg.ApplyDefaults()
	w := Generate(cfg)

	var buf bytes.Buffer
	results, err := Run(w, 0, zerolog.New(&buf))
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	byName := map[string]Result{}
	for _, r := range results {
		require.True(t, r.Restarts, r.Query)
		byName[r.Query] = r
	}
	require.Equal(t, 500, byName["order_by"].Rows)
	require.LessOrEqual(t, byName["join"].Rows, 500)
	require.LessOrEqual(t, byName["group_by"].Rows, 30+500)
	// Customers 27..29 never order.
	require.GreaterOrEqual(t, byName["group_join"].Rows, 3)
	require.Contains(t, buf.String(), `"query":"join"`)
}

// TestSpendingFailure checks that an enumeration error inside the grouped
// totals reaches the caller instead of yielding partial sums.
func TestSpendingFailure(t *testing.T) {
	boom := errors.New("boom")
	orders := lazy.FromFunc(func() cursor.Cursor[Order] { return cursor.Fail[Order](boom) })
	groups := lazy.GroupBy(orders, func(o Order) uuid.UUID { return o.Customer })

	spends, err := spending(groups)
	require.ErrorIs(t, err, boom)
	require.Nil(t, spends)

	w := Generate(&Config{Records: 40, Customers: 4, Seed: 1})
	spends, err = spending(lazy.GroupBy(lazy.FromSlice(w.Orders), func(o Order) uuid.UUID { return o.Customer }))
	require.NoError(t, err)
	total := 0
	for _, sp := range spends {
		total += sp.orders
	}
	require.Equal(t, 40, total)
}

func TestRunCommand(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{"--records", "50", "--customers", "5", "--rounds", "1", "--log.format", "json"}, &buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"message":"workload generated"`)
}
