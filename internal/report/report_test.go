package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"fintastic/extract/internal/gig"
	"fintastic/extract/internal/insights"
	"fintastic/extract/internal/models"
)

func TestNewAssignsIdentity(t *testing.T) {
	a := New()
	b := New()
	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, a.GeneratedAt)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "out.yaml")

	rep := New()
	rep.Gig = &gig.Result{
		IsGigWorker:     true,
		MatchedKeywords: []string{"freelance"},
		GigIncome:       decimal.NewFromInt(5000),
		GigTransactions: 2,
	}
	rep.Alerts = []insights.Alert{
		{Level: models.AlertLevelPositive, Title: "New income source", Message: "first income from freelance"},
	}

	require.NoError(t, rep.Write(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Report
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	assert.Equal(t, rep.ID, loaded.ID)
	require.NotNil(t, loaded.Gig)
	assert.True(t, loaded.Gig.IsGigWorker)
	assert.Equal(t, []string{"freelance"}, loaded.Gig.MatchedKeywords)
	require.Len(t, loaded.Alerts, 1)
	assert.Equal(t, "New income source", loaded.Alerts[0].Title)
}

func TestWriteOmitsEmptySections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	require.NoError(t, New().Write(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "gig:")
	assert.NotContains(t, string(data), "alerts:")
}

func TestWriteFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "out.yaml")

	require.NoError(t, New().Write(path, nil))

	// The umask may clear bits, so check nothing broader than the
	// requested mode survived.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&^os.FileMode(models.PermissionReportFile))

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Zero(t, dirInfo.Mode().Perm()&^os.FileMode(models.PermissionDirectory))
}
