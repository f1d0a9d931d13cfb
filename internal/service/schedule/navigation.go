package schedule

import (
	"fmt"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
)

func ParseViewMode(s string) (model.ViewMode, error) {
	switch model.ViewMode(s) {
	case model.ViewDay, "":
		return model.ViewDay, nil
	case model.ViewWeek:
		return model.ViewWeek, nil
	}
	return "", fmt.Errorf("unknown view mode %q", s)
}

func step(mode model.ViewMode) int {
	if mode == model.ViewWeek {
		return 7
	}
	return 1
}

// Previous moves the reference back one day or one week.
func Previous(ref datekey.Day, mode model.ViewMode) datekey.Day {
	return ref.AddDays(-step(mode))
}

// Next moves the reference forward one day or one week.
func Next(ref datekey.Day, mode model.ViewMode) datekey.Day {
	return ref.AddDays(step(mode))
}
