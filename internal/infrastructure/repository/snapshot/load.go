package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/teamhub/internal/domain/store"
)

// submitter is the part of *ants.Pool the loader needs.
type submitter interface {
	Submit(task func()) error
}

// loadAll decodes every collection file on a bounded worker pool.
func (s *Store) loadAll(ctx context.Context, workers int) error {
	start := time.Now()
	if err := s.disk.readSequences(); err != nil {
		return err
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("create load pool: %w", err)
	}
	defer pool.Release()

	var (
		mu    sync.Mutex
		total int
	)
	tasks := make([]func() error, 0, len(s.tables))
	for _, family := range store.Families() {
		tbl := s.tables[family]
		tasks = append(tasks, func() error {
			rows, err := tbl.load()
			if err != nil {
				return fmt.Errorf("load %s: %w", tbl.name(), err)
			}
			mu.Lock()
			total += rows
			mu.Unlock()
			return nil
		})
	}
	if err := runOnPool(pool, tasks); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "snapshot store loaded",
		"dir", s.disk.dir,
		"collections", len(s.tables),
		"rows", total,
		"duration", time.Since(start),
	)
	return nil
}

// runOnPool submits every task and waits for all submitted ones to finish,
// even when a later submission fails.
func runOnPool(p submitter, tasks []func() error) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for _, task := range tasks {
		wg.Add(1)
		if err := p.Submit(func() {
			defer wg.Done()
			if err := task(); err != nil {
				record(err)
			}
		}); err != nil {
			wg.Done()
			record(fmt.Errorf("submit load task: %w", err))
			break
		}
	}
	wg.Wait()

	return errors.Join(errs...)
}
