package commands

import (
	"testing"

	"github.com/packwright-labs/packwright/internal/cli/testutil"
	"github.com/packwright-labs/packwright/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateHealthScore(t *testing.T) {
	tests := []struct {
		name     string
		checks   []HealthCheck
		depCount int
		want     int
	}{
		{
			name: "all passing",
			checks: []HealthCheck{
				{Status: "pass"},
				{Status: "pass"},
			},
			depCount: 3,
			want:     100,
		},
		{
			name:     "no checks",
			checks:   nil,
			depCount: 0,
			want:     100,
		},
		{
			name: "one warning",
			checks: []HealthCheck{
				{Status: "warn", IssueCount: 1},
			},
			depCount: 3,
			want:     95,
		},
		{
			name: "one error counts double",
			checks: []HealthCheck{
				{Status: "error", IssueCount: 1},
			},
			depCount: 3,
			want:     90,
		},
		{
			name: "large manifest softens penalty",
			checks: []HealthCheck{
				{Status: "warn", IssueCount: 1},
			},
			depCount: 20,
			want:     97,
		},
		{
			name: "score floors at zero",
			checks: []HealthCheck{
				{Status: "error", IssueCount: 50},
			},
			depCount: 3,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateHealthScore(tt.checks, tt.depCount))
		})
	}
}

func TestGenerateRecommendations(t *testing.T) {
	checks := []HealthCheck{
		{RuleID: "MD01", Status: "warn", IssueCount: 2},
		{RuleID: "MM01", Status: "warn", IssueCount: 1},
		{RuleID: "MS01", Status: "pass", IssueCount: 0},
	}

	recs := generateRecommendations(checks)
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0], "upper bounds")
	assert.Contains(t, recs[1], "build backend")
}

func TestGenerateRecommendations_CapsAtFive(t *testing.T) {
	checks := []HealthCheck{
		{RuleID: "MD01", IssueCount: 1},
		{RuleID: "MD02", IssueCount: 1},
		{RuleID: "MD03", IssueCount: 1},
		{RuleID: "MD04", IssueCount: 1},
		{RuleID: "MD05", IssueCount: 1},
		{RuleID: "MD06", IssueCount: 1},
		{RuleID: "MM01", IssueCount: 1},
	}

	assert.Len(t, generateRecommendations(checks), 5)
}

func TestBuildManifestSummary(t *testing.T) {
	m, err := manifest.Parse([]byte(testutil.ManifestTOML))
	require.NoError(t, err)

	summary := buildManifestSummary(m, nil)
	assert.Equal(t, "mmkit", summary.Name)
	assert.Equal(t, 2, summary.Dependencies)
	assert.Equal(t, 4, summary.Groups)
	assert.Equal(t, 2, summary.Packages)
	assert.Equal(t, "(unknown)", summary.Version)
}
