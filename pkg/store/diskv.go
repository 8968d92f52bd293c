package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/flow"
)

// diskvStore keeps one JSON file per date, laid out as year/month/day.
type diskvStore struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

// OpenDiskv opens or creates a file-per-date store under basePath.
func OpenDiskv(basePath string, log *zap.Logger) (Persistence, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("%w: base path unknown", ErrStorageUnavailable)
	}
	tempDir := strings.TrimRight(basePath, string(os.PathSeparator)) + ".tmp"
	for _, dir := range []string{basePath, tempDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: ensure %s: %w", ErrStorageUnavailable, dir, err)
		}
	}

	log.Debug("opened diskv store", zap.String("path", basePath))
	return &diskvStore{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           tempDir,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, log: log}, nil
}

func (p *diskvStore) read(key string) (entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("store: read %s: %w", key, err)
	}
	var raw struct {
		Flow int64 `json:"flow"`
	}
	if err := json.Unmarshal(val, &raw); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: %s: %w", ErrCodec, key, err)
	}
	date, err := entry.ParseDate(key)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: key %s: %w", ErrCodec, key, err)
	}
	f, err := decode(date, raw.Flow)
	if err != nil {
		return entry.Entry{}, err
	}
	return entry.New(date, f), nil
}

func (p *diskvStore) write(e entry.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	// Written to TempDir and renamed into place, so a replaced entry is never
	// observed missing.
	return p.d.Write(e.Date.String(), data)
}

func (p *diskvStore) Find(_ context.Context, date entry.Date) (flow.Flow, bool, error) {
	key := date.String()
	if !p.d.Has(key) {
		return flow.None, false, nil
	}
	e, err := p.read(key)
	if err != nil {
		return flow.None, false, err
	}
	return e.Flow, true, nil
}

func (p *diskvStore) Upsert(ctx context.Context, date entry.Date, f flow.Flow, onConflict ConflictFunc) (Outcome, error) {
	if !f.Valid() {
		return Skipped, fmt.Errorf("store: upsert %s: %w", date, flow.ErrUnsupportedCode)
	}
	if !date.Valid() {
		return Skipped, fmt.Errorf("store: upsert %s: %w", date, entry.ErrInvalidDate)
	}
	existing, found, err := p.Find(ctx, date)
	if err != nil {
		return Skipped, err
	}

	if !found {
		if err := p.write(entry.New(date, f)); err != nil {
			return Skipped, fmt.Errorf("store: insert %s: %w", date, err)
		}
		p.log.Info("entry inserted", zap.Stringer("date", date), zap.Stringer("flow", f))
		return Inserted, nil
	}

	decision := KeepExisting
	if onConflict != nil {
		if decision, err = onConflict(existing); err != nil {
			return Skipped, fmt.Errorf("store: upsert %s: resolve conflict: %w", date, err)
		}
	}
	if decision != Overwrite {
		p.log.Info("entry kept", zap.Stringer("date", date), zap.Stringer("flow", existing))
		return Skipped, nil
	}

	if err := p.write(entry.New(date, f)); err != nil {
		return Skipped, fmt.Errorf("store: overwrite %s: %w", date, err)
	}
	p.log.Info("entry overwritten",
		zap.Stringer("date", date),
		zap.Stringer("old", existing),
		zap.Stringer("flow", f))
	return Overwritten, nil
}

func (p *diskvStore) Delete(_ context.Context, date entry.Date) error {
	key := date.String()
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: delete %s: %w", date, err)
	}
	p.log.Info("entry deleted", zap.Stringer("date", date))
	return nil
}

func (p *diskvStore) Month(ctx context.Context, year int, month time.Month) ([]entry.Entry, error) {
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	walkCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make([]entry.Entry, 0)
	for key := range p.d.KeysPrefix(prefix, walkCtx.Done()) {
		e, err := p.read(key)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (p *diskvStore) Close() error {
	return nil
}

// keyToPathTransform maps `2024-03-10` to 2024/03/10.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
