package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/orrery/config"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/sim"
)

func classicWorld(t *testing.T) *orbit.World {
	t.Helper()
	_, w, err := loadWorld("classic")
	require.NoError(t, err)
	return w
}

func TestSimulateJSON(t *testing.T) {
	var buf bytes.Buffer
	w := classicWorld(t)

	require.NoError(t, simulate(w, 120, 60, newJSONWriter(&buf)))

	var samples []Sample
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var s Sample
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &s))
		samples = append(samples, s)
	}
	require.Len(t, samples, 9)

	assert.Equal(t, Sample{Frame: 0, Body: "earth", X: 234}, samples[1])
	assert.Equal(t, uint64(60), samples[3].Frame)
	assert.Equal(t, uint64(120), samples[8].Frame)
	assert.Equal(t, "moon", samples[8].Body)
	assert.InDelta(t, -0.3, samples[4].Theta, 1e-9, "earth after 60 frames")
}

func TestSimulateTable(t *testing.T) {
	var buf bytes.Buffer
	w := classicWorld(t)

	require.NoError(t, simulate(w, 1, 1, &tableWriter{out: &buf}))

	out := buf.String()
	assert.Contains(t, out, "theta")
	assert.Contains(t, out, "233.997")
	assert.Contains(t, out, "-1.770")
}

type failingWriter struct{}

func (failingWriter) Write([]Sample) error { return errors.New("disk full") }
func (failingWriter) Flush() error         { return nil }

func TestSimulateStopsOnWriteError(t *testing.T) {
	err := simulate(classicWorld(t), 10, 1, failingWriter{})
	assert.EqualError(t, err, "disk full")
}

func TestCamerasTable(t *testing.T) {
	out := camerasTable(classicWorld(t))
	assert.Contains(t, out, "earth-pov")
	assert.Contains(t, out, "(0.00, 0.00, 1500.00)")
}

func TestWithExtraBodies(t *testing.T) {
	sys, err := config.LoadSystem("classic")
	require.NoError(t, err)

	big := withExtraBodies(sys, 50)
	assert.Len(t, sys.Bodies, 3, "original untouched")
	assert.Len(t, big.Bodies, 53)

	w, err := orbit.NewWorld(big)
	require.NoError(t, err)

	scheduler := sim.NewScheduler()
	orbit.Register(scheduler, w)
	for range 10 {
		scheduler.Once(0)
	}
	for _, b := range w.Bodies() {
		if p := w.Parent(b); p != nil {
			require.InDelta(t, b.OrbitRadius, b.Position.Dist(p.Position), 1e-9, b.Name)
		}
	}
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		System:       "classic",
		Duration:     time.Second,
		Bodies:       10003,
		Cameras:      3,
		TotalUpdates: 2500,
		TotalTime:    time.Second,
		UpdateTime: Stats{
			Samples: []time.Duration{time.Millisecond, 3 * time.Millisecond},
		},
		Systems: []sim.SystemStats{{Name: "OrbitSystem", ExecutionCount: 2500}},
	}
	r.UpdateTime.Finalize()
	assert.Equal(t, 2*time.Millisecond, r.UpdateTime.Avg)
	assert.Equal(t, time.Millisecond, r.UpdateTime.Min)
	assert.Equal(t, 3*time.Millisecond, r.UpdateTime.Max)

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "# Orrery Bench Report")
	assert.Contains(t, out, "**Bodies:** 10,003")
	assert.Contains(t, out, "**Total Ticks:** 2,500 (2500 ticks/s)")
	assert.Contains(t, out, "**OrbitSystem:** 2,500 runs")
	assert.NotContains(t, out, "GC Pause")
}

func TestPresetsTable(t *testing.T) {
	out, err := presetsTable()
	require.NoError(t, err)
	for _, name := range []string{"classic", "compact", "wide"} {
		assert.Contains(t, out, name)
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	sys, err := config.LoadSystem("classic")
	require.NoError(t, err)

	report(&buf, "classic", sys, nil)
	assert.Contains(t, buf.String(), `"classic", 3 bodies, 3 cameras, seed 1`)
	assert.Contains(t, buf.String(), "-0.00500")

	buf.Reset()
	f, err := config.Parse(strings.NewReader(`
[[bodies]]
name = "moon"
parent = "earth"
`))
	require.NoError(t, err)
	_, err = config.Validate(f)
	require.Error(t, err)

	report(&buf, "broken.toml", nil, err)
	assert.Contains(t, buf.String(), "broken.toml")
	assert.Contains(t, buf.String(), `"earth"`)
}
