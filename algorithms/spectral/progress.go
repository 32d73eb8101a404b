package spectral

import (
	"time"

	"github.com/RyanBlaney/sonido-stft/logging"
)

// Progress observes per-frame work. Start is called once with the frame
// count before any frame is processed, Update once per finished frame with
// the 1-based count of finished frames, and Finish once at the end, also
// when there are no frames. Calls come from the goroutine that invoked
// Analyze or Synthesize.
type Progress interface {
	Start(total int)
	Update(done int)
	Finish()
}

type nopProgress struct{}

func (nopProgress) Start(int)  {}
func (nopProgress) Update(int) {}
func (nopProgress) Finish()    {}

func progressOrNop(p Progress) Progress {
	if p == nil {
		return nopProgress{}
	}
	return p
}

// LogProgress reports progress through a logger, at most once per Every
// frames plus the last one. Every <= 0 reports every tenth of each run.
type LogProgress struct {
	Logger logging.Logger
	Label  string
	Every  int

	total   int
	every   int
	started time.Time
}

// NewLogProgress creates a LogProgress reporting every tenth of the work
func NewLogProgress(logger logging.Logger, label string) *LogProgress {
	return &LogProgress{Logger: logger, Label: label}
}

func (p *LogProgress) Start(total int) {
	p.total = total
	p.started = time.Now()
	p.every = p.Every
	if p.every <= 0 {
		p.every = max(total/10, 1)
	}
	p.Logger.Debug(p.Label+" started", logging.Fields{"frames": total})
}

func (p *LogProgress) Update(done int) {
	if done%p.every != 0 && done != p.total {
		return
	}
	p.Logger.Debug(p.Label+" progress", logging.Fields{
		"done":  done,
		"total": p.total,
	})
}

func (p *LogProgress) Finish() {
	p.Logger.Info(p.Label+" finished", logging.Fields{
		"frames":  p.total,
		"elapsed": time.Since(p.started).String(),
	})
}
