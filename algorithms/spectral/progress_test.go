package spectral

import (
	"bytes"
	"strings"
	"testing"

	"github.com/RyanBlaney/sonido-stft/logging"
	"github.com/stretchr/testify/assert"
)

func TestLogProgress(t *testing.T) {
	var out bytes.Buffer
	logger := logging.NewDefaultLoggerWithWriters(&out, &out)
	logger.SetLevel(logging.DebugLevel)

	p := NewLogProgress(logger, "analysis")
	p.Start(20)
	for i := 1; i <= 20; i++ {
		p.Update(i)
	}
	p.Finish()

	lines := out.String()
	assert.Contains(t, lines, "analysis started map[frames:20]")
	assert.Equal(t, 10, strings.Count(lines, "analysis progress"))
	assert.Contains(t, lines, "[INFO] analysis finished")
}

func TestLogProgressRecomputesIntervalPerRun(t *testing.T) {
	var out bytes.Buffer
	logger := logging.NewDefaultLoggerWithWriters(&out, &out)
	logger.SetLevel(logging.DebugLevel)

	p := NewLogProgress(logger, "synthesis")
	p.Start(1000)
	p.Finish()
	out.Reset()

	p.Start(10)
	for i := 1; i <= 10; i++ {
		p.Update(i)
	}
	p.Finish()

	assert.Equal(t, 10, strings.Count(out.String(), "synthesis progress"))
	assert.Zero(t, p.Every)
}

func TestLogProgressKeepsExplicitInterval(t *testing.T) {
	var out bytes.Buffer
	logger := logging.NewDefaultLoggerWithWriters(&out, &out)
	logger.SetLevel(logging.DebugLevel)

	p := &LogProgress{Logger: logger, Label: "analysis", Every: 4}
	for _, total := range []int{100, 10} {
		out.Reset()
		p.Start(total)
		for i := 1; i <= total; i++ {
			p.Update(i)
		}
		// every fourth frame plus the last one
		want := total / 4
		if total%4 != 0 {
			want++
		}
		assert.Equal(t, want, strings.Count(out.String(), "analysis progress"))
	}
}

func TestNilProgressIsNoop(t *testing.T) {
	p := progressOrNop(nil)
	p.Start(3)
	p.Update(1)
	p.Finish()

	assert.IsType(t, nopProgress{}, p)
}
