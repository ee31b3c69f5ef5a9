// Package stations loads the station directory from a YAML file.
package stations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"bikeshare/internal/core/domain/model/kernel"
	"bikeshare/internal/core/ports"
	"bikeshare/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Stations []stationEntry `yaml:"stations"`
}

type stationEntry struct {
	Name     string        `yaml:"name"`
	MoveTime time.Duration `yaml:"move_time"`
}

// Directory answers haul times from an immutable table.
type Directory struct {
	moveTimes map[string]time.Duration
}

var _ ports.StationDirectory = (*Directory)(nil)

// Load reads and parses the YAML file at path.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read station file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a station table. Unknown keys, duplicate or blank names and
// negative move times are rejected.
func Parse(data []byte) (*Directory, error) {
	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse station file: %w", err)
	}

	d := &Directory{moveTimes: make(map[string]time.Duration, len(cfg.Stations))}
	var problems []error
	for i, s := range cfg.Stations {
		station, err := kernel.NewStation(s.Name)
		if err != nil {
			problems = append(problems, fmt.Errorf("station #%d: %w", i+1, err))
			continue
		}
		name := station.String()
		if _, dup := d.moveTimes[name]; dup {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("station",
				fmt.Errorf("%s is listed twice", name)))
			continue
		}
		if s.MoveTime < 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("move time",
				fmt.Errorf("%s has negative move time %s", name, s.MoveTime)))
			continue
		}
		d.moveTimes[name] = s.MoveTime
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return d, nil
}

// MoveTime returns the haul time between station and the repair center.
func (d *Directory) MoveTime(_ context.Context, station kernel.Station) (time.Duration, error) {
	if v, ok := d.moveTimes[station.String()]; ok {
		return v, nil
	}
	return 0, errs.NewObjectNotFoundError("station", station.String())
}

// Known reports whether station is listed in the table.
func (d *Directory) Known(station kernel.Station) bool {
	_, ok := d.moveTimes[station.String()]
	return ok
}

// Names lists the known stations in lexical order.
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.moveTimes))
	for n := range d.moveTimes {
		names = append(names, n)
	}
	slices.SortFunc(names, strings.Compare)
	return names
}
