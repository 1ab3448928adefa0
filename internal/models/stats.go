package models

// StatsPeriod selects the aggregation window for class statistics.
type StatsPeriod string

const (
	StatsPeriodDaily   StatsPeriod = "daily"
	StatsPeriodWeekly  StatsPeriod = "weekly"
	StatsPeriodMonthly StatsPeriod = "monthly"
)

// Valid reports whether the period is one of the supported values.
func (p StatsPeriod) Valid() bool {
	switch p {
	case StatsPeriodDaily, StatsPeriodWeekly, StatsPeriodMonthly:
		return true
	}
	return false
}

// MemberStats is the per-member study rollup inside the window.
type MemberStats struct {
	MemberID      int64  `json:"member_id"`
	StudentUserID string `json:"student_user_id"`
	DisplayName   string `json:"display_name,omitempty"`
	TotalStudyMin int    `json:"total_study_min"`
	AvgStudyMin   int    `json:"avg_study_min"`
	ActiveDays    int    `json:"active_days"`
}

// ChartPoint is one calendar day of the class-wide time series.
type ChartPoint struct {
	Date          string `json:"date"`
	TotalStudyMin int    `json:"total_study_min"`
	ActiveMembers int    `json:"active_members"`
}

// ClassStatsSummary aggregates the class over the window. The average
// denominator is active members only, so never-active students do not
// dilute it.
type ClassStatsSummary struct {
	TotalMembers         int `json:"total_members"`
	ActiveMembers        int `json:"active_members"`
	TotalStudyMin        int `json:"total_study_min"`
	AvgStudyMinPerMember int `json:"avg_study_min_per_member"`
}

// ClassStats is the full statistics payload for a class and period.
type ClassStats struct {
	Period      StatsPeriod       `json:"period"`
	Summary     ClassStatsSummary `json:"summary"`
	ChartData   []ChartPoint      `json:"chart_data"`
	MemberStats []MemberStats     `json:"member_stats"`
}
