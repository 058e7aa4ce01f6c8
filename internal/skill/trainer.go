package skill

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

// Trainer retrains the classifier off the game loop. Requests carry a
// snapshot of the sample history; the request slot holds at most one
// pending snapshot and a newer request replaces an older unstarted
// one, so a slow training run never queues up stale work.
type Trainer struct {
	classifier *Classifier
	modelDir   string

	mu      sync.Mutex
	pending []telemetry.PerformanceSample
	wake    chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewTrainer starts the background training goroutine. If modelDir is
// non-empty, each successful retrain is also saved there. Call Close
// to stop the goroutine.
func NewTrainer(classifier *Classifier, modelDir string) *Trainer {
	t := &Trainer{
		classifier: classifier,
		modelDir:   modelDir,
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	t.wg.Add(1)
	go t.run()
	return t
}

// Request schedules a retrain on a snapshot of samples. It never
// blocks the caller; the snapshot replaces any not-yet-started one.
func (t *Trainer) Request(samples []telemetry.PerformanceSample) {
	snapshot := append([]telemetry.PerformanceSample(nil), samples...)
	t.mu.Lock()
	t.pending = snapshot
	t.mu.Unlock()
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// Close stops the trainer and waits for an in-flight run to finish.
func (t *Trainer) Close() {
	close(t.done)
	t.wg.Wait()
}

func (t *Trainer) run() {
	defer t.wg.Done()
	for {
		select {
		case <-t.done:
			return
		case <-t.wake:
		}

		t.mu.Lock()
		samples := t.pending
		t.pending = nil
		t.mu.Unlock()
		if samples == nil {
			continue
		}

		if err := t.classifier.Train(samples); err != nil {
			log.Warn("skill retrain failed", "err", err)
			continue
		}
		if t.modelDir != "" {
			if err := t.classifier.Save(t.modelDir); err != nil {
				log.Warn("cannot save skill model", "err", err)
			}
		}
	}
}
