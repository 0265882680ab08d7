// Package input reads allocation inputs: resource definitions from YAML or
// JSON files, discrete slots and sampled time series from CSV.
package input

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/homeload/core/model"
)

// LoadResources reads a list of resource field sets from a .yaml, .yml or
// .json file and builds validated resources from it.
func LoadResources(path string) ([]model.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	case ".json":
		err = json.Unmarshal(data, &records)
	default:
		return nil, fmt.Errorf("unsupported resource format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return model.BuildResources(records)
}

// ReadSlots parses "label,capacity" rows. A header row whose capacity column
// is not numeric is skipped.
func ReadSlots(r io.Reader) ([]model.Slot, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	var slots []model.Slot
	for i, row := range rows {
		capacity, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("slot row %d: %w", i+1, err)
		}
		slots = append(slots, model.Slot{Label: strings.TrimSpace(row[0]), Capacity: capacity})
	}
	return slots, nil
}

// ReadSeries parses "time,value" rows with RFC 3339 timestamps. A leading
// header row is skipped. Rows must already be in time order.
func ReadSeries(r io.Reader) ([]model.SeriesPoint, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	var points []model.SeriesPoint
	for i, row := range rows {
		ts, terr := time.Parse(time.RFC3339, strings.TrimSpace(row[0]))
		v, verr := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if terr != nil || verr != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("series row %d: %w", i+1, errors.Join(terr, verr))
		}
		if n := len(points); n > 0 && !ts.After(points[n-1].Time) {
			return nil, fmt.Errorf("series row %d: time %s is not after %s", i+1, ts.Format(time.RFC3339), points[n-1].Time.Format(time.RFC3339))
		}
		points = append(points, model.SeriesPoint{Time: ts, Value: v})
	}
	return points, nil
}

func readRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	return cr.ReadAll()
}
