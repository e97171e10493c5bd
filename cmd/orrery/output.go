package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/plus3/orrery/config"
	"github.com/plus3/orrery/orbit"
)

var (
	colorPrimary = lipgloss.Color("#00BFFF")
	colorMuted   = lipgloss.Color("#8C8C8C")
	colorDanger  = lipgloss.Color("#FF5252")
	colorSuccess = lipgloss.Color("#00E676")

	headerStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(colorSuccess)
	errStyle    = lipgloss.NewStyle().Foreground(colorDanger)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func num(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// Sample is the state of one body at one frame.
type Sample struct {
	Frame uint64  `json:"frame"`
	Body  string  `json:"body"`
	Theta float64 `json:"theta"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

func sampleWorld(frame uint64, w *orbit.World) []Sample {
	samples := make([]Sample, 0, w.BodyCount())
	for _, b := range w.Bodies() {
		samples = append(samples, Sample{
			Frame: frame,
			Body:  b.Name,
			Theta: b.Theta,
			X:     b.Position.X,
			Y:     b.Position.Y,
			Z:     b.Position.Z,
		})
	}
	return samples
}

// sampleWriter prints samples as they arrive or collects them for a table.
type sampleWriter interface {
	Write(samples []Sample) error
	Flush() error
}

type jsonWriter struct {
	enc *json.Encoder
}

func newJSONWriter(w io.Writer) *jsonWriter {
	return &jsonWriter{enc: json.NewEncoder(w)}
}

func (j *jsonWriter) Write(samples []Sample) error {
	for _, s := range samples {
		if err := j.enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}

func (j *jsonWriter) Flush() error { return nil }

type tableWriter struct {
	out  io.Writer
	rows [][]string
}

func (t *tableWriter) Write(samples []Sample) error {
	for _, s := range samples {
		t.rows = append(t.rows, []string{
			strconv.FormatUint(s.Frame, 10),
			s.Body,
			num(s.Theta, 4),
			num(s.X, 3),
			num(s.Y, 3),
			num(s.Z, 3),
		})
	}
	return nil
}

func (t *tableWriter) Flush() error {
	tbl := newTable("frame", "body", "theta", "x", "y", "z").Rows(t.rows...)
	_, err := fmt.Fprintln(t.out, tbl.Render())
	return err
}

func camerasTable(w *orbit.World) string {
	tbl := newTable("camera", "target", "position", "look at")
	for _, c := range w.Cameras() {
		target := "-"
		if b := w.Target(c); b != nil {
			target = b.Name
		}
		tbl.Row(c.Name, target, vec(c.Position), vec(c.LookAt))
	}
	return tbl.Render()
}

func vec(v orbit.Vec3) string {
	return fmt.Sprintf("(%s, %s, %s)", num(v.X, 2), num(v.Y, 2), num(v.Z, 2))
}

func systemTable(sys *config.System) string {
	tbl := newTable("body", "parent", "orbit radius", "angular velocity", "rotation", "initial theta")
	for _, b := range sys.Bodies {
		parent := b.Parent
		if parent == "" {
			parent = "-"
		}
		theta := num(b.InitialTheta, 4)
		if b.RandomTheta {
			theta = "random"
		}
		tbl.Row(b.Name, parent, num(b.OrbitRadius, 2), num(b.AngularVelocity, 5), num(b.RotationSpeed, 4), theta)
	}
	return tbl.Render()
}
