package services

import (
	"strings"
	"time"

	"worklog/models"
)

// LoggingService creates log records. Messages may embed a
// "name == definition" pattern, which is peeled off into a taxonomy
// term and definition as a side effect of creation.
type LoggingService struct {
	records     RecordStore
	terms       TermStore
	definitions DefinitionStore
}

func NewLoggingService(records RecordStore, terms TermStore, definitions DefinitionStore) *LoggingService {
	return &LoggingService{records: records, terms: terms, definitions: definitions}
}

// Create writes a record for the job and, when the message carries a
// term definition, files it under the job's taxonomy.
func (ls *LoggingService) Create(jobID, message string) (*models.LogRecord, error) {
	record := &models.LogRecord{
		JobID:     &jobID,
		Message:   message,
		Timestamp: time.Now(),
	}

	if _, err := ls.records.CreateAndReturn(record); err != nil {
		return nil, err
	}

	if name, definition, ok := parseTermDefinition(message); ok {
		if err := ls.fileDefinition(jobID, name, definition); err != nil {
			return nil, err
		}
	}

	return record, nil
}

// parseTermDefinition extracts the "name == definition" pattern. Both
// sides must be non-empty after trimming.
func parseTermDefinition(message string) (name, definition string, ok bool) {
	before, after, found := strings.Cut(message, "==")
	if !found {
		return "", "", false
	}

	name = strings.TrimSpace(before)
	definition = strings.TrimSpace(after)
	if name == "" || definition == "" {
		return "", "", false
	}

	return name, definition, true
}

// fileDefinition finds or creates the term by name, then appends the
// definition bound to the term and job.
func (ls *LoggingService) fileDefinition(jobID, name, definition string) error {
	term, err := ls.terms.ByName(name)
	if err != nil {
		return err
	}
	if term == nil {
		term, err = ls.terms.CreateAndReturn(&models.TaxonomyTerm{Name: name})
		if err != nil {
			return err
		}
	}

	return ls.definitions.Create(&models.TaxonomyTermDefinition{
		TermID:     term.ID,
		JobID:      jobID,
		Definition: definition,
	}, true)
}

// ForDate lists the day's records.
func (ls *LoggingService) ForDate(date time.Time) ([]models.LogRecord, error) {
	return ls.records.ForDate(date)
}

// Search lists records matching the term, case-insensitively.
func (ls *LoggingService) Search(term string) ([]models.LogRecord, error) {
	return ls.records.Matching(term)
}
