package services

import (
	"strings"
	"testing"
	"time"

	"worklog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportService() *ReportService {
	// 9-to-5 workday: 32 quarter-hour periods
	return NewReportService(new(MockJobStore), new(MockProjectStore), new(MockWordStore), 9, 17)
}

func TestRedact(t *testing.T) {
	words := []string{"secret", "acme"}

	t.Run("Replaces every occurrence", func(t *testing.T) {
		got := Redact("the secret acme secret plan", words)
		assert.Equal(t, "the bleep bleep bleep plan", got)
	})

	t.Run("Case sensitive", func(t *testing.T) {
		got := Redact("Secret stays, secret goes", words)
		assert.Equal(t, "Secret stays, bleep goes", got)
	})

	t.Run("Idempotent", func(t *testing.T) {
		once := Redact("a secret deal", words)
		twice := Redact(once, words)
		assert.Equal(t, once, twice)
	})

	t.Run("Input string untouched", func(t *testing.T) {
		original := "a secret deal"
		_ = Redact(original, words)
		assert.Equal(t, "a secret deal", original)
	})

	t.Run("Empty word list", func(t *testing.T) {
		got := Redact("nothing to hide", nil)
		assert.Equal(t, "nothing to hide", got)
	})
}

func TestBillableIntersection(t *testing.T) {
	svc := newReportService()
	base := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	recordAt := func(offset time.Duration) models.LogRecord {
		return models.LogRecord{Timestamp: base.Add(offset)}
	}

	t.Run("Span floors to quarter hours", func(t *testing.T) {
		// 47 minutes spans 3 full quarter-hour periods
		index, rate := svc.BillableIntersection([]models.LogRecord{
			recordAt(0),
			recordAt(47 * time.Minute),
		})

		assert.Equal(t, 3, index)
		assert.InDelta(t, float64(3)/32*100, rate, 0.0001)
	})

	t.Run("Order of records is irrelevant", func(t *testing.T) {
		index, _ := svc.BillableIntersection([]models.LogRecord{
			recordAt(time.Hour),
			recordAt(0),
			recordAt(30 * time.Minute),
		})

		assert.Equal(t, 4, index)
	})

	t.Run("Fewer than two records is zero", func(t *testing.T) {
		index, rate := svc.BillableIntersection([]models.LogRecord{recordAt(0)})
		assert.Zero(t, index)
		assert.Zero(t, rate)

		index, rate = svc.BillableIntersection(nil)
		assert.Zero(t, index)
		assert.Zero(t, rate)
	})

	t.Run("Sub-period span is zero index", func(t *testing.T) {
		index, rate := svc.BillableIntersection([]models.LogRecord{
			recordAt(0),
			recordAt(14 * time.Minute),
		})

		assert.Zero(t, index)
		assert.Zero(t, rate)
	})
}

func TestCounts(t *testing.T) {
	svc := newReportService()
	j1, j2 := "j1", "j2"

	records := []models.LogRecord{
		{JobID: &j1, Message: "fixed the flaky test"},
		{JobID: &j1, Message: "fixed the slow test"},
		{JobID: &j2, Message: "deployed"},
		{Message: "lunch"},
	}

	t.Run("WordCount is over unique tokens", func(t *testing.T) {
		// fixed, the, flaky, test, slow, deployed, lunch
		assert.Equal(t, 7, svc.WordCount(records))
	})

	t.Run("JobCount ignores unattached records", func(t *testing.T) {
		assert.Equal(t, 2, svc.JobCount(records))
	})

	t.Run("Stats bundles the aggregates", func(t *testing.T) {
		stats := svc.Stats(records)
		assert.Equal(t, 7, stats.Words)
		assert.Equal(t, 2, stats.Jobs)
	})

	t.Run("StatsAsync delivers the same result", func(t *testing.T) {
		stats := <-svc.StatsAsync(records)
		assert.Equal(t, svc.Stats(records), stats)
	})
}

func TestExport(t *testing.T) {
	projectID := "p1"
	job := &models.Job{ID: "job-1", JID: 123456789, Title: "rollout", ProjectID: &projectID}
	ignoredJob := &models.Job{ID: "job-2", JID: 555555555, Title: "internal", ProjectID: &projectID}
	project := &models.Project{ID: projectID, Name: "ops", IgnoredJobs: []int64{555555555}}

	setup := func() (*ReportService, *MockJobStore, *MockProjectStore, *MockWordStore) {
		jobs := new(MockJobStore)
		projects := new(MockProjectStore)
		words := new(MockWordStore)
		return NewReportService(jobs, projects, words, 9, 17), jobs, projects, words
	}

	ts := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)

	t.Run("Flat export redacts and renders columns", func(t *testing.T) {
		svc, jobs, projects, words := setup()
		jobs.On("ByID", "job-1").Return(job, nil)
		projects.On("ByID", projectID).Return(project, nil)
		words.On("ByProject", projectID).Return([]models.BannedWord{{Word: "secret"}}, nil)

		jobID := "job-1"
		out, err := svc.Export([]models.LogRecord{
			{JobID: &jobID, Message: "shipped the secret feature", Timestamp: ts},
			{JobID: &jobID, Message: "wrote docs", Timestamp: ts.Add(time.Hour)},
		}, ExportOptions{ShowIndex: true, ShowTime: true, ShowJobID: true})

		require.NoError(t, err)
		lines := strings.Split(out, "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "1) - 2026-03-09 14:30 - 123456789 - shipped the bleep feature", lines[0])
		assert.Equal(t, "2) - 2026-03-09 15:30 - 123456789 - wrote docs", lines[1])
	})

	t.Run("Ignored jobs are dropped", func(t *testing.T) {
		svc, jobs, projects, words := setup()
		jobs.On("ByID", "job-1").Return(job, nil)
		jobs.On("ByID", "job-2").Return(ignoredJob, nil)
		projects.On("ByID", projectID).Return(project, nil)
		words.On("ByProject", projectID).Return([]models.BannedWord{}, nil)

		kept, dropped := "job-1", "job-2"
		out, err := svc.Export([]models.LogRecord{
			{JobID: &kept, Message: "public work", Timestamp: ts},
			{JobID: &dropped, Message: "hidden work", Timestamp: ts},
		}, ExportOptions{})

		require.NoError(t, err)
		assert.Contains(t, out, "public work")
		assert.NotContains(t, out, "hidden work")
	})

	t.Run("Grouped export sorts by jid with headers", func(t *testing.T) {
		svc, jobs, projects, words := setup()
		otherProject := "p2"
		early := &models.Job{ID: "job-3", JID: 111111111, Title: "alpha", ProjectID: &otherProject}
		jobs.On("ByID", "job-1").Return(job, nil)
		jobs.On("ByID", "job-3").Return(early, nil)
		jobs.On("ByJID", int64(123456789)).Return(job, nil)
		jobs.On("ByJID", int64(111111111)).Return(early, nil)
		projects.On("ByID", projectID).Return(project, nil)
		projects.On("ByID", otherProject).Return(&models.Project{ID: otherProject}, nil)
		words.On("ByProject", projectID).Return([]models.BannedWord{}, nil)
		words.On("ByProject", otherProject).Return([]models.BannedWord{}, nil)

		one, three := "job-1", "job-3"
		out, err := svc.Export([]models.LogRecord{
			{JobID: &one, Message: "later job line", Timestamp: ts},
			{JobID: &three, Message: "earlier job line", Timestamp: ts},
		}, ExportOptions{GroupByJob: true})

		require.NoError(t, err)
		lines := strings.Split(out, "\n")
		assert.Equal(t, "111111111 alpha", lines[0])
		assert.Equal(t, "earlier job line", lines[1])
		assert.Contains(t, out, "123456789 rollout")
		assert.Less(t, strings.Index(out, "111111111"), strings.Index(out, "123456789"))
	})

	t.Run("Records without a job render as-is", func(t *testing.T) {
		svc, _, _, _ := setup()

		out, err := svc.Export([]models.LogRecord{
			{Message: "untethered line", Timestamp: ts},
		}, ExportOptions{})

		require.NoError(t, err)
		assert.Equal(t, "untethered line", out)
	})
}
