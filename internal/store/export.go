package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

type ExportData struct {
	ID       string             `json:"id"`
	Atoms    int                `json:"atoms"`
	Seed     int64              `json:"seed"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	Frames   [][][3]float32     `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes a stored run as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, frames [][]mgl32.Vec3, times []float64) error {
	data := ExportData{
		ID:       meta.ID,
		Atoms:    meta.Atoms,
		Seed:     meta.Seed,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    meta.Steps,
		Times:    times,
		Frames:   make([][][3]float32, len(frames)),
		Metrics:  meta.Metrics,
	}

	for i, frame := range frames {
		data.Frames[i] = make([][3]float32, len(frame))
		for j, p := range frame {
			data.Frames[i][j] = [3]float32{p.X(), p.Y(), p.Z()}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes a stored run's frames in the same column layout the
// store uses on disk.
func ExportCSV(w io.Writer, frames [][]mgl32.Vec3, times []float64) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(frames) == 0 {
		return nil
	}

	if err := cw.Write(frameHeader(len(frames[0]))); err != nil {
		return err
	}

	for i, frame := range frames {
		row := make([]string, 0, 1+len(frame)*3)
		row = append(row, strconv.FormatFloat(times[i], 'f', 6, 64))
		for _, p := range frame {
			for axis := 0; axis < 3; axis++ {
				row = append(row, strconv.FormatFloat(float64(p[axis]), 'f', 6, 32))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}
