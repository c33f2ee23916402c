// Package engine implements the geometric relationship core: contact and
// support graph construction, automatic fastener placement, and structural
// integrity scoring. Every operation takes an immutable part snapshot and
// returns derived values; the only state an Engine carries is its settings,
// a logger, and the analysis memo cache.
package engine

import (
	"sync"

	"go.uber.org/zap"

	"github.com/piwi3910/FrameFit/internal/model"
)

// Engine runs analyses over part snapshots.
type Engine struct {
	settings model.AnalysisSettings
	log      *zap.SugaredLogger

	mu       sync.Mutex
	memoHash uint64
	memoOK   bool
	memo     StructuralReport
}

// New creates an engine with the given settings. A nil logger disables
// logging.
func New(settings model.AnalysisSettings, logger *zap.SugaredLogger) *Engine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{settings: settings, log: logger}
}

// Settings returns the engine's settings value.
func (e *Engine) Settings() model.AnalysisSettings { return e.settings }
