package libgame

import (
	"fmt"
	"time"

	"github.com/plan-systems/klog"
)

// Progress reports how many positions have been fully solved at the shallowest depth reached so far.
type Progress struct {
	Depth   int           // search depth (edges removed from the starting position)
	Count   int           // positions solved at Depth
	Elapsed time.Duration // since the solve started
}

func (p Progress) String() string {
	return fmt.Sprintf("top solved depth:%d count:%d seconds:%.3f", p.Depth, p.Count, p.Elapsed.Seconds())
}

// progressTracker follows the shallowest depth at which positions have been solved.
type progressTracker struct {
	topDepth   int
	count      int
	start      time.Time
	onProgress func(Progress)
}

func (pt *progressTracker) reset(numEdges int) {
	pt.topDepth = numEdges
	pt.count = 0
	pt.start = time.Now()
}

// track is called each time a non-trivial position at the given depth is solved.
func (pt *progressTracker) track(depth int) {
	switch {
	case depth > pt.topDepth:
		return
	case depth == pt.topDepth:
		pt.count++
	default:
		pt.topDepth = depth
		pt.count = 1
	}

	report := Progress{
		Depth:   pt.topDepth,
		Count:   pt.count,
		Elapsed: time.Since(pt.start),
	}
	klog.V(1).Infof("%v", report)
	if pt.onProgress != nil {
		pt.onProgress(report)
	}
}
