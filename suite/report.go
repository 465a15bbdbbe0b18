package suite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/scibench/pkg/errors"
)

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// ReadJSON loads a report written by WriteJSON.
func ReadJSON(path string) (*Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var r Report
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return &r, nil
}

// PlotTimings draws the mean time of every successful record as a bar
// chart. The file format follows the extension of path (png, svg, pdf...).
func (r *Report) PlotTimings(path string) error {
	var values plotter.Values
	var labels []string
	for _, rec := range r.Records {
		if !rec.OK() {
			continue
		}
		values = append(values, rec.Mean)
		labels = append(labels, fmt.Sprintf("%s\n%s", rec.Method, filepath.Base(rec.Dataset[0])))
	}
	if len(values) == 0 {
		return errors.NewValueError("PlotTimings", "no successful records to plot")
	}

	p := plot.New()
	p.Title.Text = "Benchmark timings"
	p.Y.Label.Text = "Mean time (s)"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "bar chart")
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)

	width := vg.Length(len(values))*vg.Inch + 2*vg.Inch
	if err := p.Save(width, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}
