package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/cppla/betterthanyou/models"
)

// ParticipantTotal is a participant's summed points across all logged days.
type ParticipantTotal struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Total         int    `json:"total"`
}

// DailyPoints holds the points each participant earned on one date, keyed by participant id.
type DailyPoints struct {
	Date   string         `json:"date"`
	Points map[string]int `json:"points"`
}

// Scoreboard is the aggregate view of a challenge.
type Scoreboard struct {
	Totals []ParticipantTotal `json:"totals"`
	Daily  []DailyPoints      `json:"daily"`
}

// DayEntry is one goal as seen on a single day.
type DayEntry struct {
	Goal            models.Goal      `json:"goal"`
	ParticipantName string           `json:"participant_name"`
	Log             *models.DailyLog `json:"log"`
}

// DayView lists every goal of a challenge with its log for one date.
type DayView struct {
	Date    string     `json:"date"`
	Entries []DayEntry `json:"entries"`
}

// Totals sums points earned per participant. Participants without logs score zero.
// The result is ordered by total descending, then by name.
func Totals(participants []models.Participant, logs []models.DailyLog) []ParticipantTotal {
	sums := make(map[string]int, len(participants))
	for _, l := range logs {
		sums[l.ParticipantID] += l.PointsEarned
	}
	totals := make([]ParticipantTotal, 0, len(participants))
	for _, p := range participants {
		totals = append(totals, ParticipantTotal{ParticipantID: p.ID, Name: p.Name, Total: sums[p.ID]})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Name < totals[j].Name
	})
	return totals
}

// DailySeries sums points earned per participant per date, ordered by date.
func DailySeries(logs []models.DailyLog) []DailyPoints {
	byDate := map[string]map[string]int{}
	for _, l := range logs {
		day, ok := byDate[l.Date]
		if !ok {
			day = map[string]int{}
			byDate[l.Date] = day
		}
		day[l.ParticipantID] += l.PointsEarned
	}
	series := make([]DailyPoints, 0, len(byDate))
	for date, points := range byDate {
		series = append(series, DailyPoints{Date: date, Points: points})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// BuildScoreboard derives totals and the daily series from a snapshot.
func BuildScoreboard(snap Snapshot) Scoreboard {
	return Scoreboard{
		Totals: Totals(snap.Participants, snap.Logs),
		Daily:  DailySeries(snap.Logs),
	}
}

// BuildDayView pairs every goal in snap with its log on date, if any.
func BuildDayView(snap Snapshot, date string) DayView {
	names := make(map[string]string, len(snap.Participants))
	for _, p := range snap.Participants {
		names[p.ID] = p.Name
	}
	logs := map[string]models.DailyLog{}
	for _, l := range snap.Logs {
		if l.Date == date {
			logs[l.GoalID] = l
		}
	}
	view := DayView{Date: date, Entries: make([]DayEntry, 0, len(snap.Goals))}
	for _, g := range snap.Goals {
		entry := DayEntry{Goal: g, ParticipantName: names[g.ParticipantID]}
		if l, ok := logs[g.ID]; ok {
			l := l
			entry.Log = &l
		}
		view.Entries = append(view.Entries, entry)
	}
	return view
}

// Scores loads a challenge and computes its scoreboard.
func (s *Service) Scores(ctx context.Context, inviteCode string) (Scoreboard, error) {
	snap, err := s.Snapshot(ctx, inviteCode)
	if err != nil {
		return Scoreboard{}, err
	}
	return BuildScoreboard(snap), nil
}

// Day loads a challenge and builds the view of a single date.
func (s *Service) Day(ctx context.Context, inviteCode, date string) (DayView, error) {
	if !ValidDate(date) {
		return DayView{}, ErrInvalidDate
	}
	snap, err := s.Snapshot(ctx, inviteCode)
	if err != nil {
		return DayView{}, err
	}
	return BuildDayView(snap, date), nil
}

// TotalFor returns the total points earned by participantID within its challenge.
func (s *Service) TotalFor(ctx context.Context, participantID string) (int, error) {
	var total int
	if err := s.db.WithContext(ctx).Model(&models.DailyLog{}).
		Where("participant_id = ?", participantID).
		Select("COALESCE(SUM(points_earned),0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("sum points: %w", err)
	}
	return total, nil
}
