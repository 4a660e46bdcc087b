package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tillpoint/internal/domain"
	"tillpoint/internal/repos"
)

// TableWatcher re-reads the shared table state on a timer and hands each
// snapshot to OnSnapshot. This poll is the only cross-station visibility
// mechanism in the system: there is no push, so a station showing the table
// board refreshes from here. Fire-and-forget; a failed poll just logs.
type TableWatcher struct {
	Tables     *repos.TableRepo
	OnSnapshot func([]domain.Table)

	interval time.Duration
	cron     *cron.Cron
}

func NewTableWatcher(tables *repos.TableRepo, interval time.Duration, onSnapshot func([]domain.Table)) *TableWatcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &TableWatcher{Tables: tables, OnSnapshot: onSnapshot, interval: interval}
}

func (w *TableWatcher) Start() error {
	if w.cron != nil {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", w.interval), w.poll); err != nil {
		return err
	}
	c.Start()
	w.cron = c
	return nil
}

func (w *TableWatcher) Stop() {
	if w.cron != nil {
		w.cron.Stop()
		w.cron = nil
	}
}

func (w *TableWatcher) poll() {
	tables, err := w.Tables.GetAll()
	if err != nil {
		zap.L().Warn("table poll failed", zap.Error(err))
		return
	}
	if w.OnSnapshot != nil {
		w.OnSnapshot(tables)
	}
}
