package blocklogger

import (
	"sync"
	"time"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
)

const progressInterval = 10 * time.Second

// progress accumulates inserted blocks between two progress lines.
type progress struct {
	sync.Mutex
	blocks   int64
	reds     int64
	lastLine time.Time
	now      func() time.Time
}

var defaultProgress = newProgress(time.Now)

func newProgress(now func() time.Time) *progress {
	return &progress{now: now, lastLine: now()}
}

// LogBlock counts an inserted block and, at most once per progressInterval,
// logs how many blocks were inserted since the previous line.
func LogBlock(record *externalapi.BlockRecord) {
	defaultProgress.add(record)
}

// add returns true when a progress line was emitted.
func (p *progress) add(record *externalapi.BlockRecord) bool {
	p.Lock()
	defer p.Unlock()

	p.blocks++
	p.reds += int64(len(record.GHOSTDAGData.MergeSetReds()))

	now := p.now()
	elapsed := now.Sub(p.lastLine)
	if elapsed < progressInterval {
		return false
	}

	noun := "blocks"
	if p.blocks == 1 {
		noun = "block"
	}
	log.Infof("Inserted %d %s in %s (%d red merges, latest blue score %d at %s)",
		p.blocks, noun, elapsed.Round(10*time.Millisecond), p.reds,
		record.GHOSTDAGData.BlueScore(), time.UnixMilli(record.Header.Timestamp()).UTC())

	p.blocks, p.reds = 0, 0
	p.lastLine = now
	return true
}
