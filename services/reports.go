package services

import (
	"fmt"
	"slices"
	"strings"

	"worklog/models"
)

// RedactionPlaceholder replaces banned words in rendered output.
const RedactionPlaceholder = "bleep"

// billablePeriod is the fixed quarter-hour bucket billable spans are
// measured in.
const billablePeriodSeconds = 900

// ReportService computes the read-only aggregates over log records:
// billable spans, token counts and exportable text. Nothing here
// mutates the store.
type ReportService struct {
	jobs     JobStore
	projects ProjectStore
	words    WordStore

	// workday bounds in hours, from configuration
	dayStart int
	dayEnd   int
}

func NewReportService(jobs JobStore, projects ProjectStore, words WordStore, dayStart, dayEnd int) *ReportService {
	return &ReportService{
		jobs:     jobs,
		projects: projects,
		words:    words,
		dayStart: dayStart,
		dayEnd:   dayEnd,
	}
}

// Redact replaces every literal, case-sensitive occurrence of a banned
// word with the placeholder. Pure: the stored text is never touched,
// and applying it twice yields the same output.
func Redact(text string, words []string) string {
	for _, w := range words {
		if w == "" {
			continue
		}
		text = strings.ReplaceAll(text, w, RedactionPlaceholder)
	}
	return text
}

// BillableIntersection buckets the span between the earliest and latest
// record into quarter-hours and expresses it as a percentage of the
// configured workday's quarter-hour count.
func (rs *ReportService) BillableIntersection(records []models.LogRecord) (index int, rate float64) {
	if len(records) < 2 {
		return 0, 0
	}

	earliest := records[0].Timestamp
	latest := records[0].Timestamp
	for _, r := range records[1:] {
		if r.Timestamp.Before(earliest) {
			earliest = r.Timestamp
		}
		if r.Timestamp.After(latest) {
			latest = r.Timestamp
		}
	}

	index = int(latest.Sub(earliest).Seconds()) / billablePeriodSeconds
	periods := (rs.dayEnd - rs.dayStart) * 4
	if periods <= 0 {
		return index, 0
	}

	return index, float64(index) / float64(periods) * 100
}

// WordCount counts unique whitespace-separated tokens across all
// record messages.
func (rs *ReportService) WordCount(records []models.LogRecord) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		for _, token := range strings.Fields(r.Message) {
			seen[token] = struct{}{}
		}
	}
	return len(seen)
}

// JobCount counts unique jobs referenced by the records.
func (rs *ReportService) JobCount(records []models.LogRecord) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.JobID != nil {
			seen[*r.JobID] = struct{}{}
		}
	}
	return len(seen)
}

// Stats bundles the aggregate numbers for a span of records.
type Stats struct {
	Words         int     `json:"words"`
	Jobs          int     `json:"jobs"`
	BillableIndex int     `json:"billable_index"`
	BillableRate  float64 `json:"billable_rate"`
}

// Stats computes the aggregates synchronously.
func (rs *ReportService) Stats(records []models.LogRecord) Stats {
	index, rate := rs.BillableIntersection(records)
	return Stats{
		Words:         rs.WordCount(records),
		Jobs:          rs.JobCount(records),
		BillableIndex: index,
		BillableRate:  rate,
	}
}

// StatsAsync runs Stats off the calling goroutine. The computation is
// the same blocking one; this only keeps a caller's loop responsive.
func (rs *ReportService) StatsAsync(records []models.LogRecord) <-chan Stats {
	out := make(chan Stats, 1)
	go func() {
		out <- rs.Stats(records)
		close(out)
	}()
	return out
}

// ExportOptions selects the columns and grouping of an export.
type ExportOptions struct {
	GroupByJob bool
	ShowIndex  bool
	ShowTime   bool
	ShowJobID  bool
}

// exportContext caches job/project/word lookups across one export run.
type exportContext struct {
	jobs    map[string]*models.Job
	words   map[string][]string
	ignored map[string]bool
}

// Export renders records as text lines with redaction applied and
// ignored jobs dropped. Rendering never writes back to the store.
func (rs *ReportService) Export(records []models.LogRecord, opts ExportOptions) (string, error) {
	ctx := &exportContext{
		jobs:    make(map[string]*models.Job),
		words:   make(map[string][]string),
		ignored: make(map[string]bool),
	}

	if !opts.GroupByJob {
		lines, err := rs.renderLines(records, opts, ctx)
		if err != nil {
			return "", err
		}
		return strings.Join(lines, "\n"), nil
	}

	groups := make(map[int64][]models.LogRecord)
	order := make([]int64, 0)
	for _, r := range records {
		job, err := rs.resolveJob(r, ctx)
		if err != nil {
			return "", err
		}
		if job == nil || ctx.ignored[job.ID] {
			continue
		}
		if _, ok := groups[job.JID]; !ok {
			order = append(order, job.JID)
		}
		groups[job.JID] = append(groups[job.JID], r)
	}
	slices.Sort(order)

	var out []string
	for _, jid := range order {
		job, err := rs.jobs.ByJID(jid)
		if err != nil {
			return "", err
		}

		header := fmt.Sprintf("%d", jid)
		if job != nil && job.Title != "" {
			header += " " + job.Title
		}
		out = append(out, header)

		lines, err := rs.renderLines(groups[jid], opts, ctx)
		if err != nil {
			return "", err
		}
		out = append(out, lines...)
		out = append(out, "")
	}

	return strings.TrimRight(strings.Join(out, "\n"), "\n"), nil
}

func (rs *ReportService) renderLines(records []models.LogRecord, opts ExportOptions, ctx *exportContext) ([]string, error) {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		job, err := rs.resolveJob(r, ctx)
		if err != nil {
			return nil, err
		}
		if job != nil && ctx.ignored[job.ID] {
			continue
		}

		message := r.Message
		if job != nil {
			message = Redact(message, ctx.words[job.ID])
		}

		parts := make([]string, 0, 4)
		if opts.ShowIndex {
			parts = append(parts, fmt.Sprintf("%d)", len(lines)+1))
		}
		if opts.ShowTime {
			parts = append(parts, r.Timestamp.Format("2006-01-02 15:04"))
		}
		if opts.ShowJobID && job != nil {
			parts = append(parts, fmt.Sprintf("%d", job.JID))
		}
		parts = append(parts, message)

		lines = append(lines, strings.Join(parts, " - "))
	}

	return lines, nil
}

// resolveJob loads and caches the record's job along with the project
// configuration that governs it: banned words and the ignored flag.
func (rs *ReportService) resolveJob(r models.LogRecord, ctx *exportContext) (*models.Job, error) {
	if r.JobID == nil {
		return nil, nil
	}
	if job, ok := ctx.jobs[*r.JobID]; ok {
		return job, nil
	}

	job, err := rs.jobs.ByID(*r.JobID)
	if err != nil {
		return nil, err
	}
	ctx.jobs[*r.JobID] = job
	if job == nil || job.ProjectID == nil {
		return job, nil
	}

	project, err := rs.projects.ByID(*job.ProjectID)
	if err != nil {
		return nil, err
	}
	if project != nil {
		ctx.ignored[job.ID] = slices.Contains(project.IgnoredJobs, job.JID)

		banned, err := rs.words.ByProject(project.ID)
		if err != nil {
			return nil, err
		}
		words := make([]string, len(banned))
		for i, b := range banned {
			words[i] = b.Word
		}
		ctx.words[job.ID] = words
	}

	return job, nil
}
