// Package migrations implements a forward-only schema evolution runner.
//
// Steps are declared statically in registered order (see steps.go). Each step
// names a reversible schema change; the runner records applied steps in the
// migrations table. A step's Up action and its bookkeeping insert run in one
// transaction, so a crash can never leave a step applied but unrecorded.
package migrations

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hearthhq/hearth/pkg/model"
)

// Step is one named, ordered, reversible schema change.
type Step struct {
	Name string
	Up   func(tx *gorm.DB) error
	Down func(tx *gorm.DB) error
}

// Status reports whether a registered step has been applied.
type Status struct {
	Name    string `json:"name"`
	Applied bool   `json:"applied"`
}

// Runner applies registered steps against a database.
type Runner struct {
	db    *gorm.DB
	steps []Step
	log   *logrus.Logger
}

// NewRunner creates a Runner over the default registered steps.
func NewRunner(db *gorm.DB, log *logrus.Logger) *Runner {
	return &Runner{db: db, steps: Steps(), log: log}
}

// NewRunnerWithSteps creates a Runner over an explicit step list. Used by
// tests to exercise the runner with synthetic steps.
func NewRunnerWithSteps(db *gorm.DB, steps []Step, log *logrus.Logger) *Runner {
	return &Runner{db: db, steps: steps, log: log}
}

// Initialize ensures the tracking table exists. Idempotent.
func (r *Runner) Initialize() error {
	r.log.Info("Initializing migrations")
	return r.db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			applied_at TIMESTAMP WITH TIME ZONE
		)
	`).Error
}

// ApplyAll runs every registered step that is not yet recorded as applied, in
// registration order. The first failure aborts the run and leaves the failed
// step unrecorded.
func (r *Runner) ApplyAll() error {
	r.log.Info("Running migrations")

	applied, err := r.appliedNames()
	if err != nil {
		return err
	}

	for _, step := range r.steps {
		if applied[step.Name] {
			r.log.WithField("step", step.Name).Debug("Migration already applied, skipping")
			continue
		}

		r.log.WithField("step", step.Name).Info("Applying migration")

		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := step.Up(tx); err != nil {
				return err
			}
			now := time.Now()
			return tx.Create(&model.Migration{Name: step.Name, AppliedAt: &now}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", step.Name, err)
		}
	}

	r.log.Info("All migrations completed")
	return nil
}

// RollbackLast reverts the most recently applied step and deletes its record,
// in one transaction. It is a no-op when nothing is applied.
func (r *Runner) RollbackLast() error {
	var last model.Migration
	err := r.db.
		Where("applied_at IS NOT NULL").
		Order("id DESC").
		First(&last).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			r.log.Info("No migrations to rollback")
			return nil
		}
		return err
	}

	step, ok := r.findStep(last.Name)
	if !ok {
		return fmt.Errorf("applied migration %s is not registered", last.Name)
	}

	r.log.WithField("step", step.Name).Info("Rolling back migration")

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := step.Down(tx); err != nil {
			return fmt.Errorf("rollback of %s failed: %w", step.Name, err)
		}
		return tx.Where("name = ?", step.Name).Delete(&model.Migration{}).Error
	})
}

// Status returns, for every registered step in order, whether it is applied.
func (r *Runner) Status() ([]Status, error) {
	applied, err := r.appliedNames()
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(r.steps))
	for _, step := range r.steps {
		statuses = append(statuses, Status{Name: step.Name, Applied: applied[step.Name]})
	}
	return statuses, nil
}

func (r *Runner) appliedNames() (map[string]bool, error) {
	var records []model.Migration
	err := r.db.
		Where("applied_at IS NOT NULL").
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}

	applied := make(map[string]bool, len(records))
	for _, rec := range records {
		applied[rec.Name] = true
	}
	return applied, nil
}

func (r *Runner) findStep(name string) (Step, bool) {
	for _, step := range r.steps {
		if step.Name == name {
			return step, true
		}
	}
	return Step{}, false
}
