package app

import (
	"worklog/config"
	"worklog/database"
	"worklog/services"
	"worklog/validator"
)

// App wires the accessors and services handlers depend on. Everything
// shares the one store handle; no ambient globals.
type App struct {
	DB *database.DB

	Companies   *database.Companies
	Projects    *database.Projects
	Jobs        *database.Jobs
	Records     *database.Records
	Tasks       *database.Tasks
	Notes       *database.Notes
	People      *database.People
	Plans       *database.Plans
	Terms       *database.Terms
	Definitions *database.Definitions
	Words       *database.BannedWords
	Searches    *database.SavedSearches
	Assessments *database.Assessments

	Logging *services.LoggingService
	TaskSvc *services.TaskService
	NoteSvc *services.NoteService
	PlanSvc *services.PlanService
	Reports *services.ReportService

	Validator *validator.Validator
	Config    *config.Config
}

func New(db *database.DB, cfg *config.Config) *App {
	companies := database.NewCompanies(db)
	projects := database.NewProjects(db, companies)
	jobs := database.NewJobs(db)
	records := database.NewRecords(db)
	tasks := database.NewTasks(db)
	notes := database.NewNotes(db)
	terms := database.NewTerms(db)
	definitions := database.NewDefinitions(db)
	words := database.NewBannedWords(db)
	plans := database.NewPlans(db)

	return &App{
		DB:          db,
		Companies:   companies,
		Projects:    projects,
		Jobs:        jobs,
		Records:     records,
		Tasks:       tasks,
		Notes:       notes,
		People:      database.NewPeople(db),
		Plans:       plans,
		Terms:       terms,
		Definitions: definitions,
		Words:       words,
		Searches:    database.NewSavedSearches(db),
		Assessments: database.NewAssessments(db),

		Logging: services.NewLoggingService(records, terms, definitions),
		TaskSvc: services.NewTaskService(tasks, records),
		NoteSvc: services.NewNoteService(notes),
		PlanSvc: services.NewPlanService(plans),
		Reports: services.NewReportService(jobs, projects, words, cfg.DayStart, cfg.DayEnd),

		Validator: validator.New(),
		Config:    cfg,
	}
}
