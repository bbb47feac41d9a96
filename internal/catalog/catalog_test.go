package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cube-quadruplets/internal/search"
	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

var (
	p5436  = types.Quadruplet{A: 5, B: 4, C: 3, D: 6}
	p8619  = types.Quadruplet{A: 8, B: 6, C: 1, D: 9}
	s10812 = types.Quadruplet{A: 10, B: 8, C: 6, D: 12}
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.CatalogConfig{Dir: filepath.Join(t.TempDir(), "catalog")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return store
}

// --- store ---

func TestNewStoreCreatesDatabase(t *testing.T) {
	store := testStore(t)
	_, err := os.Stat(filepath.Join(store.Dir(), dbFile))
	assert.NoError(t, err)
}

func TestSaveAndLoadPoint(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	res, err := search.SearchWithFamilies(5, 1, 100, 3)
	require.NoError(t, err)

	run, err := store.SavePoint(ctx, res, 100, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, KindPoint, run.Kind)
	assert.Equal(t, 3, run.Quadruplets)
	assert.Equal(t, 1, run.Primitives)

	loaded, qs, err := store.LoadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run, loaded)
	assert.Equal(t, res.Quadruplets, qs)
	assert.Equal(t, int64(5), loaded.Params.A)
	assert.Equal(t, int64(1), loaded.Params.N)
	assert.Nil(t, loaded.Params.Grid)
}

func TestSaveAndLoadRange(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	grid := search.Grid{AStart: 10, AEnd: 1, NStart: 3, NEnd: 1}
	cfg := types.RangeConfig{MaxIterationsPerCombo: 1, MaxFactor: 2, Workers: 1}
	res, err := search.SearchRange(ctx, grid, cfg, nil)
	require.NoError(t, err)

	run, err := store.SaveRange(ctx, grid, cfg, res)
	require.NoError(t, err)
	assert.True(t, run.Truncated)

	loaded, qs, err := store.LoadRun(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Params.Grid)
	assert.Equal(t, grid.Normalize(), *loaded.Params.Grid)
	assert.Equal(t, cfg, *loaded.Params.Range)
	assert.Equal(t, []types.Quadruplet{p5436, s10812}, qs)
}

func TestSaveEmptyRun(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	res, err := search.Search(6, 3, 100)
	require.NoError(t, err)
	run, err := store.SavePoint(ctx, res, 100, 0)
	require.NoError(t, err)

	_, qs, err := store.LoadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, qs)
}

func TestListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	var ids []string
	for _, a := range []int64{5, 8, 10} {
		res, err := search.Search(a, 1, 100)
		require.NoError(t, err)
		run, err := store.SavePoint(ctx, res, 100, 0)
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{runs[0].ID, runs[1].ID, runs[2].ID})

	runs, err = store.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestLoadRunNotFound(t *testing.T) {
	store := testStore(t)
	_, _, err := store.LoadRun(context.Background(), "no-such-run")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, store.DeleteRun(context.Background(), "no-such-run"), ErrRunNotFound)
}

func TestDeleteRun(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	res, err := search.Search(5, 1, 100)
	require.NoError(t, err)
	run, err := store.SavePoint(ctx, res, 100, 0)
	require.NoError(t, err)

	require.NoError(t, store.DeleteRun(ctx, run.ID))
	_, _, err = store.LoadRun(ctx, run.ID)
	assert.ErrorIs(t, err, ErrRunNotFound)

	all, err := store.Distinct(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "quadruplets must be removed with their run")
}

func TestDistinctAcrossRuns(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	for _, a := range []int64{10, 5, 5} {
		n := int64(1)
		if a == 10 {
			n = 2
		}
		res, err := search.Search(a, n, 100)
		require.NoError(t, err)
		_, err = store.SavePoint(ctx, res, 100, 0)
		require.NoError(t, err)
	}

	all, err := store.Distinct(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Quadruplet{p5436, s10812}, all)
}

// --- export ---

func TestBuildRows(t *testing.T) {
	rows := BuildRows([]types.Quadruplet{p5436, s10812, {A: 3, B: 4, C: 5, D: 6}})
	require.Len(t, rows, 3)

	assert.Equal(t, Row{
		No: 1, A: 5, B: 4, C: 3, D: 6, N: 1, Factor: 1,
		Type: "Primitive", PrimitiveForm: "(5, 4, 3, 6)",
		CubeA: "125", CubeB: "64", CubeC: "27", CubeD: "216",
		LeftSide: "91", RightSide: "91", Check: "Valid",
	}, rows[0])

	assert.Equal(t, "Scaled", rows[1].Type)
	assert.Equal(t, int64(2), rows[1].Factor)
	assert.Equal(t, "(5, 4, 3, 6)", rows[1].PrimitiveForm)

	assert.Equal(t, "Invalid", rows[2].Check, "ordering fails for (3, 4, 5, 6)")
}

func TestSummarize(t *testing.T) {
	s := Summarize([]types.Quadruplet{s10812, p5436, p8619})
	assert.Equal(t, Summary{
		Total:         3,
		Primitive:     2,
		Scaled:        1,
		UniqueFactors: 2,
		MeanA:         "7.7",
		MeanD:         "9.0",
		Min:           "(5, 4, 3, 6)",
		Max:           "(10, 8, 6, 12)",
	}, s)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Empty(t, empty.Min)
}

func TestWriteFormats(t *testing.T) {
	qs := []types.Quadruplet{p5436, p8619}

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatCSV, nil, qs))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, csvHeader, records[0])
		assert.Equal(t, []string{"2", "8", "6", "1", "9", "1", "1", "Primitive", "(8, 6, 1, 9)",
			"512", "216", "1", "729", "217", "217", "Valid"}, records[2])
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatJSON, nil, qs))
		var got Export
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Nil(t, got.Run)
		assert.Equal(t, 2, got.Summary.Total)
		assert.Len(t, got.Rows, 2)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatYAML, nil, qs))
		var got Export
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "(8, 6, 1, 9)", got.Rows[1].PrimitiveForm)
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, Write(&bytes.Buffer{}, Format("xml"), nil, qs))
	})
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"yaml": FormatYAML, "yml": FormatYAML, "json": FormatJSON, "csv": FormatCSV} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestExportRun(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	res, err := search.SearchWithFamilies(5, 1, 100, 2)
	require.NoError(t, err)
	run, err := store.SavePoint(ctx, res, 100, 2)
	require.NoError(t, err)

	path, err := store.ExportRun(ctx, run.ID, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), exportsDir, run.ID+".yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Export
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.NotNil(t, got.Run)
	assert.Equal(t, run.ID, got.Run.ID)
	assert.Equal(t, 2, got.Summary.Total)

	path, err = store.ExportRun(ctx, "", FormatCSV)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "No,a,b,c,d,n"))

	_, err = store.ExportRun(ctx, "missing", FormatJSON)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestExportRunRemovesFileOnFailure(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	res, err := search.Search(5, 1, 100)
	require.NoError(t, err)
	run, err := store.SavePoint(ctx, res, 100, 0)
	require.NoError(t, err)

	_, err = store.ExportRun(ctx, run.ID, Format("xml"))
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(store.Dir(), exportsDir, run.ID+".xml"))
	assert.True(t, os.IsNotExist(statErr), "partial export must be removed")
}
