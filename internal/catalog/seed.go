// Package catalog provides the activity catalog the roster is seeded with.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"example.com/roster/internal/domain"
)

// Entry is the YAML form of a seeded activity.
type Entry struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Schedule        string   `yaml:"schedule"`
	MaxParticipants int      `yaml:"max_participants"`
	Participants    []string `yaml:"participants"`
}

// File is the top-level document of a seed file.
type File struct {
	Activities []Entry `yaml:"activities"`
}

// Load returns the built-in catalog when path is empty, otherwise the
// activities declared in the YAML file at path.
func Load(path string) ([]domain.Activity, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML seed document.
func Parse(raw []byte) ([]domain.Activity, error) {
	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	activities := make([]domain.Activity, 0, len(file.Activities))
	for _, entry := range file.Activities {
		activities = append(activities, domain.Activity{
			Name:            entry.Name,
			Description:     entry.Description,
			Schedule:        entry.Schedule,
			MaxParticipants: entry.MaxParticipants,
			Participants:    append([]string{}, entry.Participants...),
		})
	}
	if err := Validate(activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// Validate checks the catalog invariants: non-empty unique names, positive
// capacity and no duplicate email within a roster.
func Validate(activities []domain.Activity) error {
	if len(activities) == 0 {
		return errors.New("catalog is empty")
	}

	seen := make(map[string]struct{}, len(activities))
	for i, activity := range activities {
		if activity.Name == "" {
			return fmt.Errorf("activity #%d: name is required", i+1)
		}
		if _, dup := seen[activity.Name]; dup {
			return fmt.Errorf("activity %q: duplicate name", activity.Name)
		}
		seen[activity.Name] = struct{}{}

		if activity.MaxParticipants <= 0 {
			return fmt.Errorf("activity %q: max_participants must be > 0", activity.Name)
		}

		emails := make(map[string]struct{}, len(activity.Participants))
		for _, email := range activity.Participants {
			if _, dup := emails[email]; dup {
				return fmt.Errorf("activity %q: participant %q listed twice", activity.Name, email)
			}
			emails[email] = struct{}{}
		}
	}
	return nil
}

// Default returns the built-in Mergington High School catalog.
func Default() []domain.Activity {
	return []domain.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Competitive basketball practice and games",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"james@mergington.edu"},
		},
		{
			Name:            "Tennis Club",
			Description:     "Learn tennis techniques and play friendly matches",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 10,
			Participants:    []string{"lucas@mergington.edu"},
		},
		{
			Name:            "Art Studio",
			Description:     "Explore painting, drawing and sculpture",
			Schedule:        "Mondays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct and produce school plays and performances",
			Schedule:        "Thursdays, 3:30 PM - 5:30 PM",
			MaxParticipants: 25,
			Participants:    []string{"ella@mergington.edu"},
		},
		{
			Name:            "Robotics Club",
			Description:     "Design, build and program robots for competitions",
			Schedule:        "Fridays, 3:00 PM - 5:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"noah@mergington.edu", "liam@mergington.edu"},
		},
		{
			Name:            "Math Olympiad",
			Description:     "Solve challenging problems and prepare for math competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"isabella@mergington.edu"},
		},
	}
}
