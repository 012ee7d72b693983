package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jacobbriones1/DynoDiff/internal/lake"
)

type ExportData struct {
	ID             string             `json:"id"`
	FlowRate       float64            `json:"flow_rate"`
	Volume         float64            `json:"volume"`
	InputRate      float64            `json:"input_rate"`
	SteadyState    float64            `json:"steady_state"`
	Tmax           float64            `json:"tmax"`
	Samples        int                `json:"samples"`
	Times          []float64          `json:"times"`
	Concentrations []float64          `json:"concentrations"`
	Metrics        map[string]float64 `json:"metrics"`
}

func exportData(meta *RunMetadata, series lake.Series) ExportData {
	return ExportData{
		ID:             meta.ID,
		FlowRate:       meta.FlowRate,
		Volume:         meta.Volume,
		InputRate:      meta.InputRate,
		SteadyState:    meta.Params().SteadyState(),
		Tmax:           meta.Tmax,
		Samples:        len(series),
		Times:          series.Times(),
		Concentrations: series.Concentrations(),
		Metrics:        meta.Metrics,
	}
}

func ExportJSON(w io.Writer, meta *RunMetadata, series lake.Series) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, series))
}

func ExportJSONFile(path string, meta *RunMetadata, series lake.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, series)
}
