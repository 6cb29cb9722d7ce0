package main

import (
	"time"

	"github.com/lunfardo314/easybf/engine"
	"go.uber.org/zap"
	"gopkg.in/tomb.v2"
)

// progressReporter logs the number of executed instructions periodically while a program runs
type progressReporter struct {
	log      *zap.SugaredLogger
	stats    *engine.Stats
	interval time.Duration
	tomb     tomb.Tomb
}

func startProgressReporter(log *zap.SugaredLogger, stats *engine.Stats, interval time.Duration) *progressReporter {
	r := &progressReporter{
		log:      log.Named("progress"),
		stats:    stats,
		interval: interval,
	}
	r.tomb.Go(r.worker)
	return r
}

func (r *progressReporter) worker() error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.log.Infof("%d instructions executed", r.stats.Steps())
		case <-r.tomb.Dying():
			return tomb.ErrDying
		}
	}
}

func (r *progressReporter) stop() {
	r.tomb.Kill(nil)
	_ = r.tomb.Wait()
}
