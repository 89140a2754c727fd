package seed

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	matchModel "github.com/clubdesk/matchday/internal/match/model"
)

// File is the seed document.
type File struct {
	Teams   []Team  `yaml:"teams"`
	Matches []Match `yaml:"matches"`
}

// Team is a seeded club. Empty fields take the team defaults.
type Team struct {
	Name        string   `yaml:"name"`
	Country     string   `yaml:"country"`
	FoundedYear int      `yaml:"foundedYear"`
	Coach       string   `yaml:"coach"`
	Stadium     string   `yaml:"stadium"`
	League      string   `yaml:"league"`
	Rating      *float64 `yaml:"rating"`
	LogoURL     string   `yaml:"logoUrl"`
	Players     []Player `yaml:"players"`
}

// Player is a seeded roster entry.
type Player struct {
	Name     string  `yaml:"name"`
	Position string  `yaml:"position"`
	Matches  int     `yaml:"matches"`
	Goals    int     `yaml:"goals"`
	Assists  int     `yaml:"assists"`
	Rating   float64 `yaml:"rating"`
}

// Match is a seeded fixture. Teams are referenced by name.
type Match struct {
	Home    string  `yaml:"home"`
	Away    string  `yaml:"away"`
	DaysAgo int     `yaml:"daysAgo"`
	Status  string  `yaml:"status"`
	Events  []Event `yaml:"events"`
}

// Event is a seeded match event. Side is home or away.
type Event struct {
	Type   string `yaml:"type"`
	Minute int    `yaml:"minute"`
	Side   string `yaml:"side"`
	Player string `yaml:"player"`
	Assist string `yaml:"assist"`
	Note   string `yaml:"note"`
}

// Sides of a seeded event.
const (
	SideHome = "home"
	SideAway = "away"
)

// LoadFile reads and decodes a seed file. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open seed file %s", path)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, errors.Wrapf(err, "decode seed file %s", path)
	}
	if err := file.Validate(); err != nil {
		return nil, errors.Wrapf(err, "seed file %s", path)
	}
	return &file, nil
}

// Validate checks references and enums of the document.
func (f *File) Validate() error {
	names := make(map[string]struct{}, len(f.Teams))
	for i, t := range f.Teams {
		if t.Name == "" {
			return errors.Newf("teams[%d]: name is required", i)
		}
		if _, dup := names[t.Name]; dup {
			return errors.Newf("teams[%d]: duplicate team %q", i, t.Name)
		}
		names[t.Name] = struct{}{}
		for j, p := range t.Players {
			if p.Name == "" {
				return errors.Newf("teams[%d].players[%d]: name is required", i, j)
			}
		}
	}

	for i, m := range f.Matches {
		if m.Home == "" || m.Away == "" {
			return errors.Newf("matches[%d]: home and away are required", i)
		}
		if m.Home == m.Away {
			return errors.Newf("matches[%d]: home and away must differ", i)
		}
		if m.DaysAgo < 0 {
			return errors.Newf("matches[%d]: daysAgo must not be negative", i)
		}
		if m.Status != "" && !matchModel.ValidStatus(m.Status) {
			return errors.Newf("matches[%d]: unknown status %q", i, m.Status)
		}
		for j, e := range m.Events {
			if e.Side != SideHome && e.Side != SideAway {
				return errors.Newf("matches[%d].events[%d]: side must be home or away", i, j)
			}
			if !matchModel.ValidEventType(e.Type) {
				return errors.Newf("matches[%d].events[%d]: unknown type %q", i, j, e.Type)
			}
			if e.Minute < matchModel.MinMinute || e.Minute > matchModel.MaxMinute {
				return errors.Newf("matches[%d].events[%d]: minute out of range", i, j)
			}
		}
	}
	return nil
}
