package engine

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/piwi3910/FrameFit/internal/model"
)

// AnalyzeCached returns the memoized report when the part snapshot is
// unchanged since the previous call, keyed on a content hash rather than
// slice identity. Callers driving analysis from a render or edit loop should
// use this instead of Analyze.
func (e *Engine) AnalyzeCached(parts []model.Part) StructuralReport {
	h := snapshotHash(parts)

	e.mu.Lock()
	if e.memoOK && e.memoHash == h {
		report := e.memo
		e.mu.Unlock()
		return report
	}
	e.mu.Unlock()

	report := e.Analyze(parts)

	e.mu.Lock()
	e.memoHash = h
	e.memo = report
	e.memoOK = true
	e.mu.Unlock()
	return report
}

// snapshotHash folds every analysis-relevant part attribute into an FNV-1a
// sum. Two snapshots hash equal exactly when analysis would see them equal;
// input order is included so the memo never masks an ordering bug.
func snapshotHash(parts []model.Part) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	writeF := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	writeS := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	writeV := func(v model.Vec3) {
		writeF(v.X)
		writeF(v.Y)
		writeF(v.Z)
	}

	for _, p := range parts {
		writeS(p.ID)
		writeS(string(p.Category))
		writeS(string(p.Hardware))
		writeV(p.Size)
		writeV(p.Position)
		writeV(p.Rotation)
		if fp := p.Footprint; fp != nil {
			writeS(string(fp.Kind))
			writeF(fp.NotchWidth)
			writeF(fp.NotchDepth)
			writeF(fp.EndAngle)
			for _, pt := range fp.Points {
				writeF(pt.X)
				writeF(pt.Y)
			}
		}
	}
	return h.Sum64()
}
