// Package jobs runs the engine's background schedules.
package jobs

import (
	"context"
	"fmt"
	"time"

	"taxengine/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ScheduleRefresher sweeps every active assessment on a cron schedule so
// overdue flags and deferment interest track the calendar even on days with
// no user activity.
type ScheduleRefresher struct {
	cron        *cron.Cron
	assessments service.AssessmentService
	spec        string
	log         *logrus.Logger
}

func NewScheduleRefresher(assessments service.AssessmentService, spec string, log *logrus.Logger) *ScheduleRefresher {
	return &ScheduleRefresher{
		cron:        cron.New(),
		assessments: assessments,
		spec:        spec,
		log:         log,
	}
}

// Start registers the sweep and begins the cron loop.
func (r *ScheduleRefresher) Start() error {
	if _, err := r.cron.AddFunc(r.spec, r.run); err != nil {
		return fmt.Errorf("failed to schedule refresh job: %w", err)
	}
	r.cron.Start()
	r.log.WithField("spec", r.spec).Info("schedule refresh job started")
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (r *ScheduleRefresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info("schedule refresh job stopped")
}

func (r *ScheduleRefresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	refreshed, err := r.assessments.RefreshActiveSchedules(ctx)
	if err != nil {
		r.log.WithError(err).Error("schedule refresh sweep failed")
		return
	}
	r.log.WithFields(logrus.Fields{
		"refreshed": refreshed,
		"took":      time.Since(start).String(),
	}).Info("schedule refresh sweep complete")
}
