package snapshot

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
)

// restrictedError reports a RESTRICT edge that still has rows.
type restrictedError struct {
	child store.Family
	fk    string
}

func (e *restrictedError) Error() string {
	return fmt.Sprintf("row is still referenced by %s.%s", e.child, e.fk)
}

// deleteCascade removes ids of family after walking store.CascadePlan for
// their dependents, depth first. The caller holds the structure lock
// exclusively and has run checkRestricted. Stages already written stay
// written when a later one fails.
func (s *Store) deleteCascade(ctx context.Context, family store.Family, ids ...int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if err := s.applyDependents(ctx, family, ids); err != nil {
		return 0, err
	}
	removed, err := s.tables[family].removeIDs(ids)
	if err != nil {
		s.logger.ErrorContext(ctx, "cascade stage failed", "family", family, "error", err)
		return 0, err
	}
	return removed, nil
}

func (s *Store) applyDependents(ctx context.Context, family store.Family, ids []int64) error {
	deps := store.CascadeFor(family)
	parents := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		parents[id] = struct{}{}
	}

	if leafOnly(deps) {
		return s.applyConcurrently(ctx, deps, parents)
	}

	for _, dep := range deps {
		if err := s.applyDependent(ctx, dep, parents); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) applyDependent(ctx context.Context, dep store.Dependent, parents map[int64]struct{}) error {
	child := s.tables[dep.Child]
	switch dep.Action {
	case store.ActionDelete:
		ids := child.referencing(dep.ForeignKey, parents)
		_, err := s.deleteCascade(ctx, dep.Child, ids...)
		return err
	case store.ActionNullify:
		cleared, err := child.clearReference(dep.ForeignKey, parents)
		if err != nil {
			s.logger.ErrorContext(ctx, "cascade stage failed", "family", dep.Child, "foreign_key", dep.ForeignKey, "error", err)
			return err
		}
		if cleared > 0 {
			s.logger.DebugContext(ctx, "references cleared", "family", dep.Child, "foreign_key", dep.ForeignKey, "rows", cleared)
		}
		return nil
	default:
		return nil
	}
}

// applyConcurrently handles dependents that live in distinct collections and
// have no dependents of their own, such as a match's details. The first
// failure is returned once every stage has finished.
func (s *Store) applyConcurrently(ctx context.Context, deps []store.Dependent, parents map[int64]struct{}) error {
	p := pool.New().WithErrors().WithFirstError()
	for _, dep := range deps {
		p.Go(func() error {
			return s.applyDependent(ctx, dep, parents)
		})
	}
	return p.Wait()
}

func leafOnly(deps []store.Dependent) bool {
	if len(deps) < 2 {
		return false
	}
	seen := make(map[store.Family]bool, len(deps))
	for _, dep := range deps {
		if dep.Action != store.ActionDelete || seen[dep.Child] || len(store.CascadePlan[dep.Child]) > 0 {
			return false
		}
		seen[dep.Child] = true
	}
	return true
}

// checkRestricted collects every row the cascade from ids would delete and
// refuses when a RESTRICT edge points at one of them from a row that would
// survive. Nothing is removed before this passes.
func (s *Store) checkRestricted(family store.Family, ids []int64) error {
	type stage struct {
		family store.Family
		ids    map[int64]struct{}
	}

	doomed := make(map[store.Family]map[int64]struct{})
	queue := []stage{{family: family, ids: markDoomed(doomed, family, ids)}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range store.CascadePlan[cur.family] {
			if dep.Action != store.ActionDelete {
				continue
			}
			fresh := markDoomed(doomed, dep.Child, s.tables[dep.Child].referencing(dep.ForeignKey, cur.ids))
			if len(fresh) > 0 {
				queue = append(queue, stage{family: dep.Child, ids: fresh})
			}
		}
	}

	for _, parent := range store.Families() {
		parentIDs := doomed[parent]
		if len(parentIDs) == 0 {
			continue
		}
		for _, dep := range store.CascadePlan[parent] {
			if dep.Action != store.ActionRestrict {
				continue
			}
			for _, id := range s.tables[dep.Child].referencing(dep.ForeignKey, parentIDs) {
				if _, gone := doomed[dep.Child][id]; !gone {
					return &restrictedError{child: dep.Child, fk: dep.ForeignKey}
				}
			}
		}
	}
	return nil
}

// markDoomed adds ids to the family's set and returns the ones not seen before.
func markDoomed(doomed map[store.Family]map[int64]struct{}, family store.Family, ids []int64) map[int64]struct{} {
	set := doomed[family]
	if set == nil {
		set = make(map[int64]struct{}, len(ids))
		doomed[family] = set
	}
	fresh := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, seen := set[id]; seen {
			continue
		}
		set[id] = struct{}{}
		fresh[id] = struct{}{}
	}
	return fresh
}

// deleteRoot is the entry point of every public delete.
func (s *Store) deleteRoot(ctx context.Context, family store.Family, id int64) (bool, error) {
	s.structure.Lock()
	defer s.structure.Unlock()

	if !s.tables[family].exists(id) {
		return false, nil
	}
	if err := s.checkRestricted(family, []int64{id}); err != nil {
		var restricted *restrictedError
		if errors.As(err, &restricted) {
			return false, storeerr.Reference(restricted.fk, restricted.Error())
		}
		return false, storeerr.Normalize(err, "delete "+string(family))
	}
	removed, err := s.deleteCascade(ctx, family, id)
	if err != nil {
		return false, storeerr.Normalize(err, "delete "+string(family))
	}
	return removed > 0, nil
}
