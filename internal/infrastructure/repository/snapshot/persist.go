package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/teamhub/internal/domain/store"
)

const sequencesFile = "_sequences.json"

// disk owns the snapshot directory. Collection files hold a JSON array of
// rows ordered by id; _sequences.json keeps the next id of every family so
// ids freed at the tail are not handed out again after a restart.
type disk struct {
	dir string

	seqMu sync.Mutex
	seqs  map[store.Family]int64
}

func newDisk(dir string) (*disk, error) {
	if dir == "" {
		return nil, fmt.Errorf("snapshot dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &disk{dir: dir, seqs: make(map[store.Family]int64)}, nil
}

func (d *disk) path(family store.Family) string {
	return filepath.Join(d.dir, string(family)+".json")
}

func (d *disk) writeRows(family store.Family, rows any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(rows); err != nil {
		return fmt.Errorf("encode %s snapshot: %w", family, err)
	}
	if err := writeFileAtomic(d.path(family), buf.B); err != nil {
		return fmt.Errorf("write %s snapshot: %w", family, err)
	}
	return nil
}

// writeSequence records next for family and rewrites the sequence file.
func (d *disk) writeSequence(family store.Family, next int64) error {
	d.seqMu.Lock()
	defer d.seqMu.Unlock()

	prev, had := d.seqs[family]
	d.seqs[family] = next

	out := make(map[string]int64, len(d.seqs))
	for f, n := range d.seqs {
		out[string(f)] = n
	}
	data, err := sonic.Marshal(out)
	if err == nil {
		err = writeFileAtomic(filepath.Join(d.dir, sequencesFile), data)
	}
	if err != nil {
		if had {
			d.seqs[family] = prev
		} else {
			delete(d.seqs, family)
		}
		return fmt.Errorf("write sequences: %w", err)
	}
	return nil
}

func (d *disk) readSequences() error {
	data, err := os.ReadFile(filepath.Join(d.dir, sequencesFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read sequences: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var raw map[string]int64
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode sequences: %w", err)
	}

	d.seqMu.Lock()
	defer d.seqMu.Unlock()
	for f, n := range raw {
		d.seqs[store.Family(f)] = n
	}
	return nil
}

func (d *disk) sequence(family store.Family) int64 {
	d.seqMu.Lock()
	defer d.seqMu.Unlock()
	return d.seqs[family]
}

// readRows decodes a collection file. A missing or blank file is an empty
// collection; anything unparsable is an error.
func readRows[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var rows []T
	if err := sonic.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// writeFileAtomic replaces path so that readers see either the old or the
// new content, never a torn file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}

	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
