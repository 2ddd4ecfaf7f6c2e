package confsearch

import (
	"sync"

	"go.uber.org/zap"
)

var (
	baseLogMu sync.RWMutex
	baseLog   = zap.NewNop()

	// logCache holds one child logger per ConfigID so repeated lookups for
	// the same application share a single annotated instance.
	logCache sync.Map // ConfigID -> *zap.Logger
)

// SetLogger installs the logger used for lookup diagnostics.
//
// The library is silent by default (a no-op logger). Pass nil to restore
// that behavior.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}

	baseLogMu.Lock()
	baseLog = l
	baseLogMu.Unlock()

	logCache.Range(func(key, _ any) bool {
		logCache.Delete(key)

		return true
	})
}

// loggerFor returns the logger annotated with the group and app of id.
func loggerFor(id ConfigID) *zap.Logger {
	if cached, ok := logCache.Load(id); ok {
		return cached.(*zap.Logger)
	}

	baseLogMu.RLock()
	child := baseLog.With(zap.String("group", id.Group), zap.String("app", id.App))
	baseLogMu.RUnlock()

	actual, _ := logCache.LoadOrStore(id, child)

	return actual.(*zap.Logger)
}
