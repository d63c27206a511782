package snapshot

import (
	"sort"
	"sync"

	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
)

// foreignKey reads, and for nullable columns clears, one reference of T.
type foreignKey[T any] struct {
	get   func(T) (int64, bool)
	clear func(*T)
}

// schema describes how a collection handles its record type.
type schema[T any] struct {
	id    func(T) int64
	setID func(*T, int64)
	clone func(T) T
	// less orders List results; nil means id ascending.
	less func(a, b T) bool
	fks  map[string]foreignKey[T]
}

// collection is one family's rows. The write lock is held across the file
// rewrite so the snapshot always matches memory; failed writes are rolled back.
type collection[T any] struct {
	family store.Family
	schema schema[T]
	disk   *disk

	mu     sync.RWMutex
	rows   map[int64]T
	nextID int64
}

func newCollection[T any](family store.Family, d *disk, sch schema[T]) *collection[T] {
	if sch.clone == nil {
		sch.clone = func(v T) T { return v }
	}
	return &collection[T]{
		family: family,
		schema: sch,
		disk:   d,
		rows:   make(map[int64]T),
		nextID: 1,
	}
}

// load replaces the in-memory rows with the snapshot content.
func (c *collection[T]) load() (int, error) {
	rows, err := readRows[T](c.disk.path(c.family))
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rows = make(map[int64]T, len(rows))
	next := int64(1)
	for _, row := range rows {
		id := c.schema.id(row)
		c.rows[id] = row
		if id >= next {
			next = id + 1
		}
	}
	if seq := c.disk.sequence(c.family); seq > next {
		next = seq
	}
	c.nextID = next
	return len(rows), nil
}

func (c *collection[T]) get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	row, ok := c.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.schema.clone(row), true
}

func (c *collection[T]) exists(id int64) bool {
	c.mu.RLock()
	_, ok := c.rows[id]
	c.mu.RUnlock()
	return ok
}

// find returns the lowest-id row matching match.
func (c *collection[T]) find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var (
		found T
		hit   bool
		best  int64
	)
	for id, row := range c.rows {
		if match(row) && (!hit || id < best) {
			found, hit, best = row, true, id
		}
	}
	if !hit {
		return found, false
	}
	return c.schema.clone(found), true
}

func (c *collection[T]) list(match func(T) bool, limit int) []T {
	c.mu.RLock()
	out := make([]T, 0, len(c.rows))
	for _, row := range c.rows {
		if match == nil || match(row) {
			out = append(out, row)
		}
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if c.schema.less != nil {
			return c.schema.less(out[i], out[j])
		}
		return c.schema.id(out[i]) < c.schema.id(out[j])
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i] = c.schema.clone(out[i])
	}
	return out
}

// conflictFunc rejects candidate when it collides with existing on a
// natural key.
type conflictFunc[T any] func(candidate, existing T) error

// insert assigns the next id to row and persists it.
func (c *collection[T]) insert(row T, conflict conflictFunc[T]) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if conflict != nil {
		for _, existing := range c.rows {
			if err := conflict(row, existing); err != nil {
				var zero T
				return zero, err
			}
		}
	}

	id := c.nextID
	c.schema.setID(&row, id)
	if err := c.disk.writeSequence(c.family, id+1); err != nil {
		var zero T
		return zero, storeerr.Internal(err, "persist "+string(c.family))
	}
	c.nextID = id + 1
	c.rows[id] = c.schema.clone(row)
	if err := c.persistLocked(); err != nil {
		delete(c.rows, id)
		var zero T
		return zero, err
	}
	return c.schema.clone(row), nil
}

// update applies mutate to a copy of row id and persists the result. The
// conflict check skips the row being updated.
func (c *collection[T]) update(id int64, mutate func(*T) error, conflict conflictFunc[T]) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	current, ok := c.rows[id]
	if !ok {
		return zero, false, nil
	}

	next := c.schema.clone(current)
	if err := mutate(&next); err != nil {
		return zero, true, err
	}
	c.schema.setID(&next, id)
	if conflict != nil {
		for otherID, existing := range c.rows {
			if otherID == id {
				continue
			}
			if err := conflict(next, existing); err != nil {
				return zero, true, err
			}
		}
	}

	c.rows[id] = next
	if err := c.persistLocked(); err != nil {
		c.rows[id] = current
		return zero, true, err
	}
	return c.schema.clone(next), true, nil
}

// upsert replaces the row matching key, keeping its id, or inserts a new one.
func (c *collection[T]) upsert(key func(T) bool, build func(existing *T) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	var (
		current T
		found   bool
	)
	for _, row := range c.rows {
		if key(row) {
			current, found = row, true
			break
		}
	}

	if found {
		prev := c.schema.clone(current)
		next, err := build(&prev)
		if err != nil {
			return zero, err
		}
		id := c.schema.id(current)
		c.schema.setID(&next, id)
		c.rows[id] = next
		if err := c.persistLocked(); err != nil {
			c.rows[id] = current
			return zero, err
		}
		return c.schema.clone(next), nil
	}

	next, err := build(nil)
	if err != nil {
		return zero, err
	}
	id := c.nextID
	c.schema.setID(&next, id)
	if err := c.disk.writeSequence(c.family, id+1); err != nil {
		return zero, storeerr.Internal(err, "persist "+string(c.family))
	}
	c.nextID = id + 1
	c.rows[id] = next
	if err := c.persistLocked(); err != nil {
		delete(c.rows, id)
		return zero, err
	}
	return c.schema.clone(next), nil
}

// remove deletes the given ids with a single rewrite and reports how many
// rows existed.
func (c *collection[T]) remove(ids ...int64) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := make(map[int64]T, len(ids))
	for _, id := range ids {
		if row, ok := c.rows[id]; ok {
			removed[id] = row
			delete(c.rows, id)
		}
	}
	if len(removed) == 0 {
		return 0, nil
	}
	if err := c.persistLocked(); err != nil {
		for id, row := range removed {
			c.rows[id] = row
		}
		return 0, err
	}
	return len(removed), nil
}

func (c *collection[T]) persistLocked() error {
	rows := make([]T, 0, len(c.rows))
	for _, row := range c.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return c.schema.id(rows[i]) < c.schema.id(rows[j])
	})
	if err := c.disk.writeRows(c.family, rows); err != nil {
		return storeerr.Internal(err, "persist "+string(c.family))
	}
	return nil
}

// The methods below let the cascade walk collections without knowing T.

func (c *collection[T]) name() store.Family { return c.family }

func (c *collection[T]) referencing(fk string, parents map[int64]struct{}) []int64 {
	ref, ok := c.schema.fks[fk]
	if !ok {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var ids []int64
	for id, row := range c.rows {
		if parent, set := ref.get(row); set {
			if _, hit := parents[parent]; hit {
				ids = append(ids, id)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (c *collection[T]) removeIDs(ids []int64) (int, error) {
	return c.remove(ids...)
}

// clearReference nulls fk on every row pointing at one of parents.
func (c *collection[T]) clearReference(fk string, parents map[int64]struct{}) (int, error) {
	ref, ok := c.schema.fks[fk]
	if !ok || ref.clear == nil {
		return 0, storeerr.Internal(errNotNullable{family: c.family, fk: fk}, "clear reference")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	previous := make(map[int64]T)
	for id, row := range c.rows {
		parent, set := ref.get(row)
		if !set {
			continue
		}
		if _, hit := parents[parent]; !hit {
			continue
		}
		previous[id] = row
		next := c.schema.clone(row)
		ref.clear(&next)
		c.rows[id] = next
	}
	if len(previous) == 0 {
		return 0, nil
	}
	if err := c.persistLocked(); err != nil {
		for id, row := range previous {
			c.rows[id] = row
		}
		return 0, err
	}
	return len(previous), nil
}

// table is the type-erased view of a collection used by the cascade.
type table interface {
	name() store.Family
	exists(id int64) bool
	referencing(fk string, parents map[int64]struct{}) []int64
	removeIDs(ids []int64) (int, error)
	clearReference(fk string, parents map[int64]struct{}) (int, error)
	load() (int, error)
}

type errNotNullable struct {
	family store.Family
	fk     string
}

func (e errNotNullable) Error() string {
	return string(e.family) + "." + e.fk + " is not a nullable reference"
}

func cloneID(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func refOf(id int64) (int64, bool) {
	return id, id != 0
}

func optRef(p *int64) (int64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
