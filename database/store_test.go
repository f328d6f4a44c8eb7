package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"worklog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "worklog-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	require.NoError(t, err)

	err = db.Migrate()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func TestStagedCommit(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	records := NewRecords(db)

	t.Run("Staged writes are invisible until commit", func(t *testing.T) {
		err := records.Create(&models.LogRecord{Message: "staged line"}, false)
		require.NoError(t, err)
		assert.Equal(t, 1, db.Pending())

		count, err := records.CountAll()
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		require.NoError(t, db.Commit())
		assert.Equal(t, 0, db.Pending())

		count, err = records.CountAll()
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Commit with nothing staged is a no-op", func(t *testing.T) {
		require.NoError(t, db.Commit())
	})

	t.Run("Immediate writes bypass the batch", func(t *testing.T) {
		err := records.Create(&models.LogRecord{Message: "direct line"}, true)
		require.NoError(t, err)
		assert.Equal(t, 0, db.Pending())

		count, err := records.CountAll()
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestSoftDeleteExclusion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	records := NewRecords(db)

	rec, err := records.CreateAndReturn(&models.LogRecord{Message: "short lived"})
	require.NoError(t, err)

	require.NoError(t, records.SoftDelete(rec.ID, true))

	t.Run("Default queries exclude dead rows", func(t *testing.T) {
		all, err := records.All()
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("Lookup of a dead row is nil without error", func(t *testing.T) {
		got, err := records.ByID(rec.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("The row itself survives", func(t *testing.T) {
		var alive bool
		err := db.QueryRow(`SELECT alive FROM records WHERE id = ?`, rec.ID).Scan(&alive)
		require.NoError(t, err)
		assert.False(t, alive)
	})

	t.Run("Every ByID lookup hides dead rows", func(t *testing.T) {
		companies := NewCompanies(db)
		projects := NewProjects(db, companies)
		jobs := NewJobs(db)
		notes := NewNotes(db)
		terms := NewTerms(db)

		company, err := companies.CreateAndReturn(&models.Company{Name: "Closing"})
		require.NoError(t, err)
		project, err := projects.CreateAndReturn(&models.Project{Name: "winding down"})
		require.NoError(t, err)
		job, err := jobs.CreateAndReturn(&models.Job{Title: "teardown"})
		require.NoError(t, err)
		note, err := notes.CreateAndReturn(&models.Note{Title: "scratch"}, models.VersionSourceManual)
		require.NoError(t, err)
		term, err := terms.CreateAndReturn(&models.TaxonomyTerm{Name: "ephemeral"})
		require.NoError(t, err)

		require.NoError(t, companies.SoftDelete(company.ID, true))
		require.NoError(t, projects.SoftDelete(project.ID, true))
		require.NoError(t, jobs.SoftDelete(job.ID, true))
		require.NoError(t, notes.SoftDelete(note.ID, true))
		require.NoError(t, terms.SoftDelete(term.ID, true))

		gotCompany, err := companies.ByID(company.ID)
		require.NoError(t, err)
		assert.Nil(t, gotCompany)

		gotProject, err := projects.ByID(project.ID)
		require.NoError(t, err)
		assert.Nil(t, gotProject)

		gotJob, err := jobs.ByID(job.ID)
		require.NoError(t, err)
		assert.Nil(t, gotJob)

		gotNote, err := notes.ByID(note.ID)
		require.NoError(t, err)
		assert.Nil(t, gotNote)

		gotTerm, err := terms.ByID(term.ID)
		require.NoError(t, err)
		assert.Nil(t, gotTerm)
	})

	t.Run("ByID and ByJID agree on a dead job", func(t *testing.T) {
		jobs := NewJobs(db)

		job, err := jobs.CreateAndReturn(&models.Job{Title: "short lived"})
		require.NoError(t, err)
		require.NoError(t, jobs.SoftDelete(job.ID, true))

		byID, err := jobs.ByID(job.ID)
		require.NoError(t, err)
		byJID, err := jobs.ByJID(job.JID)
		require.NoError(t, err)

		assert.Nil(t, byID)
		assert.Nil(t, byJID)
	})
}

func TestCompanyDefault(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	companies := NewCompanies(db)

	first, err := companies.CreateAndReturn(&models.Company{Name: "Acme", IsDefault: true})
	require.NoError(t, err)
	second, err := companies.CreateAndReturn(&models.Company{Name: "Globex"})
	require.NoError(t, err)

	require.NoError(t, companies.SetDefault(second.ID))

	def, err := companies.Default()
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, second.ID, def.ID)

	// SetDefault must have cleared the old flag, not added a second one.
	old, err := companies.ByID(first.ID)
	require.NoError(t, err)
	require.NotNil(t, old)
	assert.False(t, old.IsDefault)
}

func TestHumanIDLookups(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	companies := NewCompanies(db)
	jobs := NewJobs(db)

	t.Run("PID is assigned from the large keyspace", func(t *testing.T) {
		c, err := companies.CreateAndReturn(&models.Company{Name: "Initech"})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, c.PID, int64(100_000_000))
		assert.LessOrEqual(t, c.PID, int64(999_999_999))

		got, err := companies.ByPID(c.PID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, c.ID, got.ID)
	})

	t.Run("JID round-trips as int64", func(t *testing.T) {
		j, err := jobs.CreateAndReturn(&models.Job{Title: "migration"})
		require.NoError(t, err)
		require.NotZero(t, j.JID)

		got, err := jobs.ByJID(j.JID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, j.ID, got.ID)
	})

	t.Run("Unknown human ID is nil without error", func(t *testing.T) {
		got, err := jobs.ByJID(1)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestHiddenCompanyCascade(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	companies := NewCompanies(db)
	projects := NewProjects(db, companies)
	jobs := NewJobs(db)
	records := NewRecords(db)
	tasks := NewTasks(db)
	notes := NewNotes(db)

	hidden, err := companies.CreateAndReturn(&models.Company{Name: "Shadow", Hidden: true})
	require.NoError(t, err)
	visible, err := companies.CreateAndReturn(&models.Company{Name: "Daylight"})
	require.NoError(t, err)

	hiddenProject, err := projects.CreateAndReturn(&models.Project{Name: "skunkworks", CompanyID: &hidden.ID})
	require.NoError(t, err)
	visibleProject, err := projects.CreateAndReturn(&models.Project{Name: "storefront", CompanyID: &visible.ID})
	require.NoError(t, err)

	hiddenJob, err := jobs.CreateAndReturn(&models.Job{Title: "covert", ProjectID: &hiddenProject.ID})
	require.NoError(t, err)
	visibleJob, err := jobs.CreateAndReturn(&models.Job{Title: "overt", ProjectID: &visibleProject.ID})
	require.NoError(t, err)
	unownedJob, err := jobs.CreateAndReturn(&models.Job{Title: "floating"})
	require.NoError(t, err)

	t.Run("Projects under a hidden company disappear", func(t *testing.T) {
		all, err := projects.All()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, visibleProject.ID, all[0].ID)
	})

	t.Run("Jobs inherit the exclusion through their project", func(t *testing.T) {
		all, err := jobs.All()
		require.NoError(t, err)
		ids := make([]string, 0, len(all))
		for _, j := range all {
			ids = append(ids, j.ID)
		}
		assert.Contains(t, ids, visibleJob.ID)
		assert.Contains(t, ids, unownedJob.ID)
		assert.NotContains(t, ids, hiddenJob.ID)
	})

	t.Run("Records under a hidden chain disappear", func(t *testing.T) {
		_, err := records.CreateAndReturn(&models.LogRecord{JobID: &hiddenJob.ID, Message: "invisible"})
		require.NoError(t, err)
		kept, err := records.CreateAndReturn(&models.LogRecord{JobID: &visibleJob.ID, Message: "visible"})
		require.NoError(t, err)

		all, err := records.All()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, kept.ID, all[0].ID)
	})

	t.Run("Tasks under a hidden chain disappear", func(t *testing.T) {
		_, err := tasks.CreateAndReturn(&models.LogTask{JobID: hiddenJob.ID, Content: "invisible"})
		require.NoError(t, err)
		kept, err := tasks.CreateAndReturn(&models.LogTask{JobID: visibleJob.ID, Content: "visible"})
		require.NoError(t, err)

		all, err := tasks.All()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, kept.ID, all[0].ID)
	})

	t.Run("Notes under a hidden chain disappear", func(t *testing.T) {
		_, err := notes.CreateAndReturn(&models.Note{JobID: &hiddenJob.ID, Title: "invisible"}, models.VersionSourceManual)
		require.NoError(t, err)
		kept, err := notes.CreateAndReturn(&models.Note{JobID: &visibleJob.ID, Title: "visible"}, models.VersionSourceManual)
		require.NoError(t, err)

		all, err := notes.All()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, kept.ID, all[0].ID)
	})

	t.Run("Unowned entities stay visible", func(t *testing.T) {
		rec, err := records.CreateAndReturn(&models.LogRecord{Message: "orphan line"})
		require.NoError(t, err)

		got, err := records.ByID(rec.ID)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}

func TestNoteVersioning(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	notes := NewNotes(db)

	note, err := notes.CreateAndReturn(&models.Note{Title: "draft", Body: "v1"}, models.VersionSourceManual)
	require.NoError(t, err)

	note.Body = "v2"
	require.NoError(t, notes.Update(note, models.VersionSourceManual, true))

	note.Body = "v3"
	require.NoError(t, notes.Update(note, models.VersionSourceAuto, true))

	versions, err := notes.VersionsOf(note.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)

	assert.Equal(t, "v1", versions[0].Content)
	assert.Equal(t, "v2", versions[1].Content)
	assert.Equal(t, "v3", versions[2].Content)
	assert.Equal(t, models.VersionSourceManual, versions[0].Source)
	assert.Equal(t, models.VersionSourceAuto, versions[2].Source)

	t.Run("Soft delete appends no version", func(t *testing.T) {
		require.NoError(t, notes.SoftDelete(note.ID, true))

		versions, err := notes.VersionsOf(note.ID)
		require.NoError(t, err)
		assert.Len(t, versions, 3)
	})
}

func TestTaskLifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	jobs := NewJobs(db)
	tasks := NewTasks(db)

	job, err := jobs.CreateAndReturn(&models.Job{Title: "release"})
	require.NoError(t, err)

	task, err := tasks.CreateAndReturn(&models.LogTask{JobID: job.ID, Content: "ship it"})
	require.NoError(t, err)
	assert.True(t, task.Open())

	require.NoError(t, tasks.Complete(task.ID, true))

	got, err := tasks.ByID(task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Completed)
	assert.Nil(t, got.Cancelled)
	assert.False(t, got.Open())

	t.Run("Terminal tasks never transition again", func(t *testing.T) {
		require.NoError(t, tasks.Cancel(task.ID, true))

		got, err := tasks.ByID(task.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.Cancelled)
		assert.NotNil(t, got.Completed)
	})

	t.Run("Open views exclude finished tasks", func(t *testing.T) {
		all, err := tasks.All()
		require.NoError(t, err)
		assert.Empty(t, all)

		undated, err := tasks.NoDueDate()
		require.NoError(t, err)
		assert.Empty(t, undated)
	})
}

func TestTaskDueViews(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	jobs := NewJobs(db)
	tasks := NewTasks(db)

	job, err := jobs.CreateAndReturn(&models.Job{Title: "planning"})
	require.NoError(t, err)

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	_, err = tasks.CreateAndReturn(&models.LogTask{JobID: job.ID, Content: "late", Due: &yesterday})
	require.NoError(t, err)
	_, err = tasks.CreateAndReturn(&models.LogTask{JobID: job.ID, Content: "ahead", Due: &tomorrow})
	require.NoError(t, err)
	_, err = tasks.CreateAndReturn(&models.LogTask{JobID: job.ID, Content: "whenever"})
	require.NoError(t, err)

	overdue, err := tasks.Overdue(now)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "late", overdue[0].Content)

	upcoming, err := tasks.Upcoming(now)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "ahead", upcoming[0].Content)

	undated, err := tasks.NoDueDate()
	require.NoError(t, err)
	require.Len(t, undated, 1)
	assert.Equal(t, "whenever", undated[0].Content)

	due, err := tasks.DueOn(tomorrow)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "ahead", due[0].Content)

	count, err := tasks.CountDueOn(tomorrow)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInteractions(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	companies := NewCompanies(db)
	projects := NewProjects(db, companies)
	jobs := NewJobs(db)
	records := NewRecords(db)

	company, err := companies.CreateAndReturn(&models.Company{Name: "Acme"})
	require.NoError(t, err)
	idle, err := companies.CreateAndReturn(&models.Company{Name: "Dormant"})
	require.NoError(t, err)

	project, err := projects.CreateAndReturn(&models.Project{Name: "rollout", CompanyID: &company.ID})
	require.NoError(t, err)
	job, err := jobs.CreateAndReturn(&models.Job{Title: "deploy", ProjectID: &project.ID})
	require.NoError(t, err)

	// Two records on the same day: the company appears once, not twice.
	_, err = records.CreateAndReturn(&models.LogRecord{JobID: &job.ID, Message: "first"})
	require.NoError(t, err)
	_, err = records.CreateAndReturn(&models.LogRecord{JobID: &job.ID, Message: "second"})
	require.NoError(t, err)

	t.Run("Record activity surfaces the owning chain", func(t *testing.T) {
		touched, err := companies.InteractionsOn(time.Now())
		require.NoError(t, err)
		require.Len(t, touched, 1)
		assert.Equal(t, company.ID, touched[0].ID)

		touchedProjects, err := projects.InteractionsOn(time.Now())
		require.NoError(t, err)
		require.Len(t, touchedProjects, 1)
		assert.Equal(t, project.ID, touchedProjects[0].ID)

		touchedJobs, err := jobs.InteractionsOn(time.Now())
		require.NoError(t, err)
		require.Len(t, touchedJobs, 1)
		assert.Equal(t, job.ID, touchedJobs[0].ID)
	})

	t.Run("Direct updates count without any record", func(t *testing.T) {
		idle.Name = "Dormant no more"
		require.NoError(t, companies.Update(idle, true))

		touched, err := companies.InteractionsOn(time.Now())
		require.NoError(t, err)
		assert.Len(t, touched, 2)
	})

	t.Run("Windows outside the activity are empty", func(t *testing.T) {
		touched, err := companies.InteractionsOn(time.Now().AddDate(0, 0, -7))
		require.NoError(t, err)
		assert.Empty(t, touched)
	})
}

func TestRecordWindows(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	records := NewRecords(db)

	today := time.Now()
	lastWeek := today.AddDate(0, 0, -7)

	_, err := records.CreateAndReturn(&models.LogRecord{Message: "old entry", Timestamp: lastWeek})
	require.NoError(t, err)
	_, err = records.CreateAndReturn(&models.LogRecord{Message: "fresh entry", Timestamp: today})
	require.NoError(t, err)

	t.Run("ForDate keeps to one calendar day", func(t *testing.T) {
		got, err := records.ForDate(today)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "fresh entry", got[0].Message)

		count, err := records.CountForDate(today)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("InRange spans multiple days", func(t *testing.T) {
		got, err := records.InRange(lastWeek.AddDate(0, 0, -1), today.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("Matching searches message text case-insensitively", func(t *testing.T) {
		got, err := records.Matching("FRESH")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "fresh entry", got[0].Message)
	})
}

func TestPlans(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	plans := NewPlans(db)

	first, err := plans.CreateAndReturn(&models.Plan{JobIDs: []string{"a", "b"}})
	require.NoError(t, err)
	second, err := plans.CreateAndReturn(&models.Plan{
		JobIDs:  []string{"c"},
		Created: first.Created.Add(time.Second),
	})
	require.NoError(t, err)

	t.Run("ForDate returns the newest snapshot", func(t *testing.T) {
		got, err := plans.ForDate(time.Now())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, second.ID, got.ID)
		assert.Equal(t, []string{"c"}, got.JobIDs)
	})

	t.Run("Days without a plan return nil", func(t *testing.T) {
		got, err := plans.ForDate(time.Now().AddDate(0, 0, -3))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("DeleteForDate clears the day", func(t *testing.T) {
		require.NoError(t, plans.DeleteForDate(time.Now()))

		got, err := plans.ForToday()
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestTerms(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	jobs := NewJobs(db)
	terms := NewTerms(db)
	definitions := NewDefinitions(db)

	job, err := jobs.CreateAndReturn(&models.Job{Title: "glossary work"})
	require.NoError(t, err)
	term, err := terms.CreateAndReturn(&models.TaxonomyTerm{Name: "idempotent"})
	require.NoError(t, err)

	t.Run("ByName finds the term", func(t *testing.T) {
		got, err := terms.ByName("idempotent")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, term.ID, got.ID)
	})

	t.Run("Unknown names are nil without error", func(t *testing.T) {
		got, err := terms.ByName("nonesuch")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Definitions attach to term and job", func(t *testing.T) {
		def, err := definitions.CreateAndReturn(&models.TaxonomyTermDefinition{
			TermID:     term.ID,
			JobID:      job.ID,
			Definition: "same result on repeat",
		})
		require.NoError(t, err)

		byTerm, err := definitions.ByTerm(term.ID)
		require.NoError(t, err)
		require.Len(t, byTerm, 1)
		assert.Equal(t, def.ID, byTerm[0].ID)

		byJob, err := definitions.ByJob(job.ID)
		require.NoError(t, err)
		assert.Len(t, byJob, 1)
	})

	t.Run("Soft-deleted terms leave the listing", func(t *testing.T) {
		require.NoError(t, terms.SoftDelete(term.ID, true))

		all, err := terms.All()
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestAssessments(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	assessments := NewAssessments(db)

	t.Run("Reset installs the default thresholds", func(t *testing.T) {
		require.NoError(t, assessments.ResetThresholds())

		thresholds, err := assessments.Thresholds()
		require.NoError(t, err)
		require.Len(t, thresholds, len(models.DefaultThresholds))
		assert.Equal(t, models.DefaultThresholds[0].Label, thresholds[0].Label)
	})

	t.Run("Reset replaces rather than appends", func(t *testing.T) {
		require.NoError(t, assessments.ResetThresholds())

		thresholds, err := assessments.Thresholds()
		require.NoError(t, err)
		assert.Len(t, thresholds, len(models.DefaultThresholds))
	})

	t.Run("Factors round-trip", func(t *testing.T) {
		factor := &models.AssessmentFactor{Description: "meetings", Value: 2, Weight: 3}
		require.NoError(t, assessments.CreateFactor(factor, true))

		factors, err := assessments.Factors()
		require.NoError(t, err)
		require.Len(t, factors, 1)
		assert.Equal(t, "meetings", factors[0].Description)

		require.NoError(t, assessments.DeleteFactor(factor.ID, true))

		factors, err = assessments.Factors()
		require.NoError(t, err)
		assert.Empty(t, factors)
	})
}

func TestProjectIgnoredJobs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	companies := NewCompanies(db)
	projects := NewProjects(db, companies)

	project, err := projects.CreateAndReturn(&models.Project{Name: "internal"})
	require.NoError(t, err)
	assert.Empty(t, project.IgnoredJobs)

	require.NoError(t, projects.SetIgnoredJobs(project.ID, []int64{123456789, 987654321}, true))

	got, err := projects.ByID(project.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []int64{123456789, 987654321}, got.IgnoredJobs)
}
