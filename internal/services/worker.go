package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/repositories"
)

// Worker drains queued scoring runs. Concurrency defaults to 1 so a
// single run owns the pipeline at a time; queued runs wait their turn.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueRun(runID uuid.UUID)
}

type worker struct {
	resultRepo  repositories.ResultRepository
	runService  RunService
	runQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(
	resultRepo repositories.ResultRepository,
	runService RunService,
	concurrency int,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}

	return &worker{
		resultRepo:  resultRepo,
		runService:  runService,
		runQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting scoring worker (concurrency %d)\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processRuns(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingRuns(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping scoring worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Scoring worker stopped")
}

// EnqueueRun implements Worker.
func (w *worker) EnqueueRun(runID uuid.UUID) {
	select {
	case w.runQueue <- runID:
		log.Printf("📥 Scoring run %s enqueued\n", runID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue run %s\n", runID)
	}
}

func (w *worker) processRuns(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case runID := <-w.runQueue:
			log.Printf("👷 Worker #%d processing run %s\n", workerID, runID)
			if err := w.runService.ExecuteRun(ctx, runID); err != nil {
				log.Printf("❌ Worker #%d failed run %s: %v\n", workerID, runID, err)
			}
		}
	}
}

// pollPendingRuns re-enqueues runs that were queued but never picked up,
// e.g. after a restart.
func (w *worker) pollPendingRuns(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.resultRepo.FindPendingRuns(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending runs: %v\n", err)
				continue
			}

			for _, run := range pending {
				w.EnqueueRun(run.ID)
			}
		}
	}
}
