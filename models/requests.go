package models

// Request bodies for the HTTP surface. Validation tags are enforced by
// the validator package's custom colour/dateformat validators.

type CreateCompanyRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Abbreviation string `json:"abbreviation" validate:"max=10"`
	Colour       string `json:"colour" validate:"omitempty,colour"`
	IsDefault    bool   `json:"is_default"`
	Hidden       bool   `json:"hidden"`
}

type CreateProjectRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=200"`
	Abbreviation string  `json:"abbreviation" validate:"max=10"`
	Colour       string  `json:"colour" validate:"omitempty,colour"`
	CompanyID    *string `json:"company_id" validate:"omitempty,uuid4"`
}

type CreateJobRequest struct {
	Title     string  `json:"title" validate:"max=500"`
	Overview  string  `json:"overview"`
	URI       string  `json:"uri" validate:"omitempty,url"`
	Colour    string  `json:"colour" validate:"omitempty,colour"`
	Shredable bool    `json:"shredable"`
	ProjectID *string `json:"project_id" validate:"omitempty,uuid4"`
}

type CreateRecordRequest struct {
	JobID   string `json:"job_id" validate:"required,uuid4"`
	Message string `json:"message" validate:"required,min=1"`
}

type CreateTaskRequest struct {
	JobID   string `json:"job_id" validate:"required,uuid4"`
	Content string `json:"content" validate:"required,min=1"`
	Due     string `json:"due" validate:"omitempty,dateformat"`
	URI     string `json:"uri" validate:"omitempty,url"`
}

type CreateNoteRequest struct {
	Title   string  `json:"title" validate:"required,min=1,max=500"`
	Body    string  `json:"body"`
	Starred bool    `json:"starred"`
	JobID   *string `json:"job_id" validate:"omitempty,uuid4"`
}

type UpdateNoteRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=500"`
	Body    string `json:"body"`
	Starred bool   `json:"starred"`
	Source  string `json:"source" validate:"omitempty,oneof=manual auto"`
}

type CreatePersonRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=200"`
	CompanyID *string `json:"company_id" validate:"omitempty,uuid4"`
}

type CreatePlanRequest struct {
	JobIDs     []string `json:"job_ids" validate:"dive,uuid4"`
	TaskIDs    []string `json:"task_ids" validate:"dive,uuid4"`
	NoteIDs    []string `json:"note_ids" validate:"dive,uuid4"`
	ProjectIDs []string `json:"project_ids" validate:"dive,uuid4"`
	CompanyIDs []string `json:"company_ids" validate:"dive,uuid4"`
}

type CreateTermRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

type CreateDefinitionRequest struct {
	TermID     string `json:"term_id" validate:"required,uuid4"`
	JobID      string `json:"job_id" validate:"required,uuid4"`
	Definition string `json:"definition" validate:"required,min=1"`
}

type CreateBannedWordRequest struct {
	ProjectID string `json:"project_id" validate:"required,uuid4"`
	Word      string `json:"word" validate:"required,min=1,max=200"`
}

type SaveSearchRequest struct {
	Term string `json:"term" validate:"required,min=1,max=500"`
}

// ExportRequest option fields are pointers so an omitted option falls
// back to the configured default while an explicit false sticks.
type ExportRequest struct {
	Start      string `json:"start" validate:"required,dateformat"`
	End        string `json:"end" validate:"required,dateformat"`
	GroupByJob *bool  `json:"group_by_job"`
	ShowIndex  *bool  `json:"show_index"`
	ShowTime   *bool  `json:"show_time"`
	ShowJobID  *bool  `json:"show_job_id"`
}

type CreateFactorRequest struct {
	Description string `json:"description" validate:"required,min=1,max=500"`
	Value       int64  `json:"value" validate:"gte=0"`
	Weight      int64  `json:"weight" validate:"gte=0"`
}
