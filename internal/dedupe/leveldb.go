package dedupe

import (
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/hmap/store/hybrid"
)

// LevelDBBackend keeps seen domains on disk for very large runs
type LevelDBBackend struct {
	storage *hybrid.HybridMap
	count   int
}

func NewLevelDBBackend() (*LevelDBBackend, error) {
	db, err := hybrid.New(hybrid.DefaultDiskOptions)
	if err != nil {
		return nil, err
	}
	return &LevelDBBackend{storage: db}, nil
}

func (l *LevelDBBackend) Upsert(elem string) bool {
	if _, ok := l.storage.Get(elem); ok {
		return false
	}
	if err := l.storage.Set(elem, nil); err != nil {
		// still report it as new so the domain is not dropped
		gologger.Error().Msgf("dedupe: leveldb: got %v while writing %v", err, elem)
	}
	l.count++
	return true
}

func (l *LevelDBBackend) Has(elem string) bool {
	_, ok := l.storage.Get(elem)
	return ok
}

func (l *LevelDBBackend) Len() int {
	return l.count
}

func (l *LevelDBBackend) Cleanup() {
	_ = l.storage.Close()
}
