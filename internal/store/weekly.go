// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

// DefaultKeepWeeks is how many weeks of buckets SweepWeekly retains
// when callers pass no explicit retention.
const DefaultKeepWeeks = 4

// WeekFile returns the bucket path for the ISO week containing day:
// <weeklyDir>/<isoYear>/week_<NN>.json. Both the year and the week
// number come from the ISO-8601 calendar, so runs near a year boundary
// land in the same bucket as the rest of their week.
func WeekFile(weeklyDir string, day time.Time) string {
	year, week := day.ISOWeek()
	return filepath.Join(weeklyDir, strconv.Itoa(year), fmt.Sprintf("week_%02d.json", week))
}

// SaveWeekly appends papers to the bucket for day's ISO week, creating
// it if needed. Returns how many papers were new to the bucket.
func SaveWeekly(weeklyDir string, papers []types.Paper, day time.Time) (int, error) {
	return AppendPapers(WeekFile(weeklyDir, day), papers)
}

// LoadWeekly reads the bucket for day's ISO week. Missing or malformed
// buckets yield an empty list.
func LoadWeekly(weeklyDir string, day time.Time) []types.Paper {
	return LoadPapers(WeekFile(weeklyDir, day))
}

// SweepWeekly deletes buckets older than keepWeeks weeks, measured from
// day's ISO week, and returns the paths it removed. Distance between
// buckets is (currentYear-year)*52 + currentWeek - week; buckets dated
// in a later year than day are never deleted. Year directories and
// week files whose names do not parse are left alone.
func SweepWeekly(weeklyDir string, day time.Time, keepWeeks int) ([]string, error) {
	currentYear, currentWeek := day.ISOWeek()

	years, err := os.ReadDir(weeklyDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", weeklyDir, err)
	}

	var removed []string
	for _, yearEntry := range years {
		if !yearEntry.IsDir() {
			continue
		}
		year, err := strconv.Atoi(yearEntry.Name())
		if err != nil {
			continue
		}

		yearDir := filepath.Join(weeklyDir, yearEntry.Name())
		files, err := os.ReadDir(yearDir)
		if err != nil {
			return removed, fmt.Errorf("reading %s: %w", yearDir, err)
		}

		for _, f := range files {
			name := f.Name()
			if f.IsDir() || !strings.HasPrefix(name, "week_") || !strings.HasSuffix(name, ".json") {
				continue
			}
			week, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "week_"), ".json"))
			if err != nil {
				continue
			}

			weeksAgo := 0
			switch {
			case year == currentYear:
				weeksAgo = currentWeek - week
			case year < currentYear:
				weeksAgo = (currentYear-year)*52 + currentWeek - week
			}
			if weeksAgo <= keepWeeks {
				continue
			}

			path := filepath.Join(yearDir, name)
			if err := os.Remove(path); err != nil {
				return removed, fmt.Errorf("removing %s: %w", path, err)
			}
			removed = append(removed, path)
		}
	}
	return removed, nil
}
