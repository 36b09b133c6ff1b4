// Package analytics computes derived learning statistics from rows
// already fetched from the relational store. Nothing here is persisted;
// every figure is recomputed per dashboard load and is deterministic
// given identical input rows.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/mentor3d/professor/internal/domain"
)

// Overview aggregates the most recent learning sessions
type Overview struct {
	TotalSessions    int `json:"total_sessions"`
	TotalTimeMinutes int `json:"total_time_minutes"`
	AverageScore     int `json:"average_score"`
	StreakDays       int `json:"streak_days"`
}

// ProgressSummary aggregates lesson progress rows
type ProgressSummary struct {
	TotalLessons     int `json:"total_lessons"`
	CompletedLessons int `json:"completed_lessons"`
	AverageScore     int `json:"average_score"`
}

// CourseOverview aggregates a user's courses and recent submissions
type CourseOverview struct {
	TotalCourses     int            `json:"total_courses"`
	ActiveCourses    int            `json:"active_courses"`
	CompletedCourses int            `json:"completed_courses"`
	TotalLessons     int            `json:"total_lessons"`
	AverageScore     int            `json:"average_score"`
	RecentActivity   []ActivityItem `json:"recent_activity"`
}

// ActivityItem is one entry in the recent-activity feed
type ActivityItem struct {
	Type  string    `json:"type"`
	Title string    `json:"title"`
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}

// ComputeStreak counts consecutive calendar days with at least one
// session, walking back from referenceDate. Only the set of distinct
// calendar dates matters; time-of-day and per-day session counts are
// ignored. A gap terminates the streak, and a most-recent session that
// is not on referenceDate yields zero: a user inactive today has no
// current streak, even if a long run ended yesterday.
func ComputeStreak(sessions []domain.LearningSession, referenceDate time.Time) int {
	if len(sessions) == 0 {
		return 0
	}

	loc := referenceDate.Location()
	ref := dateOnly(referenceDate, loc)

	seen := make(map[time.Time]struct{}, len(sessions))
	dates := make([]time.Time, 0, len(sessions))
	for _, s := range sessions {
		d := dateOnly(s.CreatedAt, loc)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	streak := 0
	for i, d := range dates {
		daysDiff := int(ref.Sub(d).Hours() / 24)
		if daysDiff != i {
			break
		}
		streak++
	}
	return streak
}

// dateOnly truncates a timestamp to its calendar date in loc, pinned to
// UTC midnight so day arithmetic is immune to DST transitions.
func dateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Summarize computes the dashboard analytics overview from the most
// recent sessions (callers pass the last 30, newest first).
func Summarize(sessions []domain.LearningSession, referenceDate time.Time) Overview {
	o := Overview{
		TotalSessions: len(sessions),
		StreakDays:    ComputeStreak(sessions, referenceDate),
	}

	if len(sessions) == 0 {
		return o
	}

	scoreSum := 0
	for _, s := range sessions {
		o.TotalTimeMinutes += s.TotalTimeMinutes
		scoreSum += s.AverageScore
	}
	o.AverageScore = roundedMean(scoreSum, len(sessions))
	return o
}

// SummarizeProgress aggregates lesson progress rows
func SummarizeProgress(records []domain.ProgressRecord) ProgressSummary {
	s := ProgressSummary{TotalLessons: len(records)}
	if len(records) == 0 {
		return s
	}

	pctSum := 0
	for _, r := range records {
		if r.IsCompleted() {
			s.CompletedLessons++
		}
		pctSum += r.ProgressPercentage
	}
	s.AverageScore = roundedMean(pctSum, len(records))
	return s
}

// SummarizeCourses aggregates a user's courses and their recent
// submissions into dashboard statistics. Submissions are expected
// newest first; the activity feed keeps the first five.
func SummarizeCourses(courses []domain.Course, submissions []domain.Submission) CourseOverview {
	o := CourseOverview{TotalCourses: len(courses)}

	for _, c := range courses {
		switch c.Status {
		case domain.CourseStatusActive:
			o.ActiveCourses++
		case domain.CourseStatusCompleted:
			o.CompletedCourses++
		}
		o.TotalLessons += len(c.Lessons)
	}

	if len(submissions) > 0 {
		scoreSum := 0
		for _, sub := range submissions {
			scoreSum += sub.Score
		}
		o.AverageScore = roundedMean(scoreSum, len(submissions))
	}

	limit := 5
	if len(submissions) < limit {
		limit = len(submissions)
	}
	o.RecentActivity = make([]ActivityItem, 0, limit)
	for _, sub := range submissions[:limit] {
		title := sub.CourseTitle
		if title == "" {
			title = "Unknown Course"
		}
		o.RecentActivity = append(o.RecentActivity, ActivityItem{
			Type:  "submission",
			Title: "Assessment submitted for " + title,
			Score: sub.Score,
			Date:  sub.SubmittedAt,
		})
	}
	return o
}

// roundedMean returns round(sum/count), defined as 0 for empty input
func roundedMean(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}
