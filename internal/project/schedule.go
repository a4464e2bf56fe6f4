package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/piwi3910/doorcut/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for schedule files whose extension is not
// .json, .yaml, .yml or .toml.
var ErrUnsupportedFormat = errors.New("unsupported schedule format")

// ScheduleFormat returns the serialisation implied by path's extension:
// "json", "yaml" or "toml".
func ScheduleFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// SaveSchedule writes s to path in the format given by the file extension.
// It creates parent directories if they do not exist.
func SaveSchedule(path string, s model.Schedule) error {
	format, err := ScheduleFormat(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		data, err = json.MarshalIndent(s, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(s)
	case "toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(s)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create schedule directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}
	return nil
}

// LoadSchedule reads a schedule in the format given by the file extension.
// Doors without an ID or mark get one, a missing quantity becomes 1, and
// the schedule is validated, including unique marks.
func LoadSchedule(path string) (model.Schedule, error) {
	format, err := ScheduleFormat(path)
	if err != nil {
		return model.Schedule{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Schedule{}, fmt.Errorf("failed to read schedule: %w", err)
	}

	var raw model.Schedule
	switch format {
	case "json":
		err = json.Unmarshal(data, &raw)
	case "yaml":
		err = yaml.Unmarshal(data, &raw)
	case "toml":
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return model.Schedule{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if raw.Name == "" {
		raw.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	s := model.NewSchedule(raw.Name)
	for _, d := range raw.Doors {
		if d.Quantity == 0 {
			d.Quantity = 1
		}
		s.Add(d)
	}
	if err := s.Validate(); err != nil {
		return model.Schedule{}, fmt.Errorf("invalid schedule %s: %w", path, err)
	}
	return s, nil
}
