package rollover

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"dailytrack/internal/model"
	"dailytrack/internal/storage"
	"dailytrack/internal/tracker"
)

// Runner materializes today's task instances from the template registry
// when the calendar day has advanced past the stored checkpoint. Days the
// process slept through collapse into a single catch-up pass that only
// creates today's instances; there is no backfill.
type Runner struct {
	mu   sync.Mutex
	svc  *tracker.Service
	meta storage.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewRunner(svc *tracker.Service, meta storage.Repository, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		svc:  svc,
		meta: meta,
		log:  log,
		now:  time.Now,
	}
}

// Run performs one rollover check and returns how many tasks it created.
// Safe to call from the startup path and the minute tick concurrently; the
// checkpoint short-circuits repeats and the existence check keeps a re-run
// for an already-rolled day from duplicating anything.
func (r *Runner) Run(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	today := model.DateString(r.now())

	checkpoint, err := r.meta.GetMeta(ctx, storage.MetaLastRollover)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return 0, fmt.Errorf("read checkpoint: %w", err)
	}
	if checkpoint == today {
		return 0, nil
	}

	templates, err := r.svc.Templates(ctx)
	if err != nil {
		return 0, fmt.Errorf("list templates: %w", err)
	}

	created := 0
	for _, tpl := range templates {
		exists, err := r.svc.HasTask(ctx, tpl.Title, tpl.Time, today)
		if err != nil {
			return created, fmt.Errorf("check existing task: %w", err)
		}
		if exists {
			continue
		}
		if _, err := r.svc.CreateFromTemplate(ctx, tpl, today); err != nil {
			return created, fmt.Errorf("materialize template %q: %w", tpl.Title, err)
		}
		created++
	}

	if err := r.meta.SetMeta(ctx, storage.MetaLastRollover, today); err != nil {
		return created, fmt.Errorf("store checkpoint: %w", err)
	}
	r.log.Info("day rollover",
		zap.String("date", today),
		zap.String("previous", checkpoint),
		zap.Int("created", created),
	)
	return created, nil
}
