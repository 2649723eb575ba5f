package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const maxRecentRoutes = 5

// LocalState is the small advisory state file the client keeps per user:
// where the visitor left off, so the dashboard can offer to resume. The
// backend remains the source of truth for actual progress.
type LocalState struct {
	LastMuseumID   int64         `yaml:"last_museum_id,omitempty"`
	LastRouteID    int64         `yaml:"last_route_id,omitempty"`
	LastStopNumber int           `yaml:"last_stop_number,omitempty"`
	RecentRoutes   []RecentRoute `yaml:"recent_routes,omitempty"`
	UpdatedAt      time.Time     `yaml:"updated_at,omitempty"`
}

// RecentRoute is one entry of the dashboard's recent list.
type RecentRoute struct {
	MuseumID   int64  `yaml:"museum_id"`
	RouteID    int64  `yaml:"route_id"`
	MuseumName string `yaml:"museum_name,omitempty"`
	RouteName  string `yaml:"route_name,omitempty"`
}

// LoadState reads the state file. A missing file yields an empty state, not
// an error.
func LoadState(path string) (*LocalState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LocalState{}, nil
		}
		return nil, fmt.Errorf("config: read state: %w", err)
	}
	var state LocalState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("config: parse state: %w", err)
	}
	return &state, nil
}

// SaveState writes the state file.
func SaveState(path string, state *LocalState) error {
	state.UpdatedAt = time.Now().UTC()
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("config: encode state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write state: %w", err)
	}
	return nil
}

// VisitStop records the last visited stop and bumps the route in the recent
// list.
func (s *LocalState) VisitStop(museumID, routeID int64, stopNumber int, museumName, routeName string) {
	s.LastMuseumID = museumID
	s.LastRouteID = routeID
	s.LastStopNumber = stopNumber

	recent := RecentRoute{MuseumID: museumID, RouteID: routeID, MuseumName: museumName, RouteName: routeName}
	updated := []RecentRoute{recent}
	for _, r := range s.RecentRoutes {
		if r.MuseumID == museumID && r.RouteID == routeID {
			continue
		}
		updated = append(updated, r)
		if len(updated) == maxRecentRoutes {
			break
		}
	}
	s.RecentRoutes = updated
}

// HasResume reports whether there is a stop to resume.
func (s *LocalState) HasResume() bool {
	return s.LastMuseumID != 0 && s.LastRouteID != 0 && s.LastStopNumber > 0
}
