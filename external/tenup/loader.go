package tenup

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/tenpadel/catalogue/internal/domain/tournament"
	"github.com/tenpadel/catalogue/internal/platform/logging"
)

const maxParallelPageFiles = 4

// Loader resolves a feed reference into raw records. References can be an
// HTTP(S) dump endpoint, a single JSON dump file, or a directory of
// paginated page dumps written by the scraping layer.
type Loader struct {
	client *Client
	logger *logging.Logger
}

func NewLoader(client *Client, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{client: client, logger: logger}
}

func (l *Loader) Load(ctx context.Context, ref string) ([]tournament.RawRecord, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, crerr.New("feed reference is empty")
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if l.client == nil {
			return nil, crerr.New("no feed http client configured")
		}
		return l.client.Fetch(ctx, ref)
	}

	info, err := os.Stat(ref)
	if err != nil {
		return nil, crerr.Wrapf(err, "stat feed reference %q", ref)
	}
	if info.IsDir() {
		return l.loadDir(ctx, ref)
	}
	return loadFile(ref)
}

func loadFile(path string) ([]tournament.RawRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read feed file %q", path)
	}
	records, err := decodeRecords(raw)
	if err != nil {
		return nil, crerr.Wrapf(err, "decode feed file %q", path)
	}
	return records, nil
}

// loadDir parses every page dump in the directory concurrently and merges
// the results in filename order, so pagination order survives the pool.
func (l *Loader) loadDir(ctx context.Context, dir string) ([]tournament.RawRecord, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, crerr.Wrapf(err, "glob feed dir %q", dir)
	}
	if len(paths) == 0 {
		return nil, crerr.Newf("feed dir %q has no json dumps", dir)
	}
	sort.Strings(paths)

	workers := maxParallelPageFiles
	if len(paths) < workers {
		workers = len(paths)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, crerr.Wrap(err, "create feed parse pool")
	}
	defer pool.Release()

	pages := make([][]tournament.RawRecord, len(paths))
	errs := make([]error, len(paths))
	var wg sync.WaitGroup

	for idx, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			pages[idx], errs[idx] = loadFile(path)
		})
		if submitErr != nil {
			wg.Done()
			return nil, crerr.Wrapf(submitErr, "submit feed page %q", path)
		}
	}
	wg.Wait()

	var out []tournament.RawRecord
	for idx, page := range pages {
		if errs[idx] != nil {
			return nil, errs[idx]
		}
		out = append(out, page...)
	}

	l.logger.DebugContext(ctx, "feed directory loaded", "dir", dir, "pages", len(paths), "records", len(out))
	return out, nil
}
