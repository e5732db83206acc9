package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/laninge/indexfonder-se/internal/funds"
)

func sampleCollection() *funds.Collection {
	return &funds.Collection{
		Global: []funds.Fund{{Name: "Avanza Global", Index: "MSCI World", Fee: "0.08%", Risk: funds.RiskMedium}},
		Sweden: []funds.Fund{{Name: "Avanza Zero", Index: "OMX30", Fee: "0.00%", Risk: funds.RiskHigh}},
	}
}

func TestNew_StampsUpdateDate(t *testing.T) {
	now := time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)
	ds := New(sampleCollection(), []string{"morningstar.se"}, "disclaimer", now)
	require.Equal(t, "2026-08-01", ds.LastUpdated)
	require.Equal(t, []string{"morningstar.se"}, ds.Sources)
}

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "funds.json")
	ds := New(sampleCollection(), []string{"avanza.se"}, "text", time.Now())

	require.NoError(t, Write(path, ds))

	got, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, ds.LastUpdated, got.LastUpdated)
	require.Len(t, got.Global, 1)
	require.Equal(t, "Avanza Global", got.Global[0].Name)
	require.Equal(t, funds.RiskHigh, got.Sweden[0].Risk)
}

func TestWrite_ReplacesExistingFileAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "funds.json")

	first := New(sampleCollection(), nil, "", time.Now())
	require.NoError(t, Write(path, first))

	second := New(&funds.Collection{}, nil, "", time.Now())
	require.NoError(t, Write(path, second))

	got, err := Read(path)
	require.NoError(t, err)
	require.Empty(t, got.Global)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestRead_MissingFile_Fails(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
