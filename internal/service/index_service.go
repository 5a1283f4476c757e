package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"clinic-services/internal/domain/entity"
	"clinic-services/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DocumentIndexer writes one document into the search index.
type DocumentIndexer interface {
	IndexDocument(ctx context.Context, doc *entity.Document) error
}

// ReindexQueue holds ids of documents whose index write failed.
type ReindexQueue interface {
	Push(ctx context.Context, documentID int64) error
	Pop(ctx context.Context, n int) ([]int64, error)
	Len(ctx context.Context) (int64, error)
}

const indexTimeout = 5 * time.Second

// DocumentIndexService keeps the search index in step with the documents
// table. The table is authoritative: index failures never surface to the
// request that caused them; the id is queued and retried later.
type DocumentIndexService struct {
	db           *gorm.DB
	log          *logrus.Logger
	indexer      DocumentIndexer
	queue        ReindexQueue
	documentRepo repository.DocumentRepository

	interval  time.Duration
	batchSize int

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	started  atomic.Bool
	stopped  atomic.Bool
}

func NewDocumentIndexService(
	db *gorm.DB,
	log *logrus.Logger,
	indexer DocumentIndexer,
	queue ReindexQueue,
	documentRepo repository.DocumentRepository,
	interval time.Duration,
	batchSize int,
) *DocumentIndexService {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &DocumentIndexService{
		db:           db,
		log:          log,
		indexer:      indexer,
		queue:        queue,
		documentRepo: documentRepo,
		interval:     interval,
		batchSize:    batchSize,
		stopChan:     make(chan struct{}),
	}
}

// Index pushes doc to the search index. Call it only after the write committed.
// It reports whether the write reached the index.
func (s *DocumentIndexService) Index(ctx context.Context, doc *entity.Document) bool {
	// Detached from the request so a client disconnect does not cancel the write.
	indexCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), indexTimeout)
	defer cancel()

	err := s.indexer.IndexDocument(indexCtx, doc)
	if err == nil {
		return true
	}

	s.log.WithFields(logrus.Fields{
		"document_id": doc.ID,
	}).Warnf("Failed to index document, queued for reindex: %v", err)

	if qerr := s.queue.Push(indexCtx, doc.ID); qerr != nil {
		s.log.WithFields(logrus.Fields{
			"document_id": doc.ID,
		}).Errorf("Failed to queue document for reindex: %v", qerr)
	}
	return false
}

// ReindexPending drains up to one batch of queued ids and reports how many
// documents reached the index. Ids that fail again are re-queued.
func (s *DocumentIndexService) ReindexPending(ctx context.Context) (int, error) {
	ids, err := s.queue.Pop(ctx, s.batchSize)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	docs, err := s.documentRepo.FindByIDs(s.db.WithContext(ctx), ids)
	if err != nil {
		for _, id := range ids {
			if qerr := s.queue.Push(ctx, id); qerr != nil {
				s.log.Errorf("Failed to re-queue document %d: %v", id, qerr)
			}
		}
		return 0, fmt.Errorf("load documents for reindex: %w", err)
	}

	indexed := 0
	for i := range docs {
		if s.Index(ctx, &docs[i]) {
			indexed++
		}
	}

	if missing := len(ids) - len(docs); missing > 0 {
		s.log.Infof("Skipped %d queued documents that no longer exist", missing)
	}
	s.log.Infof("Reindex pass completed: %d of %d documents indexed", indexed, len(docs))

	return indexed, nil
}

// Drain runs passes until the queue is empty or a pass makes no progress.
func (s *DocumentIndexService) Drain(ctx context.Context) (int, error) {
	total := 0
	for {
		n, err := s.ReindexPending(ctx)
		total += n
		if err != nil || n == 0 {
			return total, err
		}
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}
	}
}

// Pending reports how many documents are waiting to be reindexed.
func (s *DocumentIndexService) Pending(ctx context.Context) (int64, error) {
	return s.queue.Len(ctx)
}

// Start launches the background reindex loop. Call Stop during shutdown.
func (s *DocumentIndexService) Start() {
	if s.interval <= 0 || !s.started.CompareAndSwap(false, true) {
		return
	}
	s.wg.Add(1)
	go s.reindexLoop()
}

// Stop gracefully shuts down the loop.
// Safe to call multiple times.
func (s *DocumentIndexService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("DocumentIndexService stopped")
	}
}

func (s *DocumentIndexService) reindexLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Reindex loop stopping")
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), s.interval)
			if _, err := s.ReindexPending(ctx); err != nil {
				s.log.Warnf("Reindex pass failed: %v", err)
			}
			cancel()
		}
	}
}
