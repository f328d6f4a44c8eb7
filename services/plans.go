package services

import (
	"time"

	"worklog/models"
)

// PlanService snapshots a day's intended work. The store allows
// duplicate plans per day; Rewrite clears the day first so callers who
// want a single plan can have one.
type PlanService struct {
	plans PlanStore
}

func NewPlanService(plans PlanStore) *PlanService {
	return &PlanService{plans: plans}
}

func (ps *PlanService) Create(p *models.Plan) (*models.Plan, error) {
	if err := ps.plans.Create(p, true); err != nil {
		return nil, err
	}
	return p, nil
}

// Rewrite replaces whatever the day already holds with the new plan.
func (ps *PlanService) Rewrite(date time.Time, p *models.Plan) (*models.Plan, error) {
	if err := ps.plans.DeleteForDate(date); err != nil {
		return nil, err
	}
	return ps.Create(p)
}

func (ps *PlanService) ForDate(date time.Time) (*models.Plan, error) {
	plan, err := ps.plans.ForDate(date)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (ps *PlanService) ForToday() (*models.Plan, error) {
	return ps.ForDate(time.Now())
}
