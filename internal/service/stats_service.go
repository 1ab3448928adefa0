package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
	"github.com/noah-isme/tutorboard-api/pkg/export"
)

type classAuthorizer interface {
	Authorize(ctx context.Context, teacherID, classID int64) (*models.Class, error)
}

type memberLister interface {
	ListProfilesByClass(ctx context.Context, classID int64) ([]models.MemberProfile, error)
}

type snapshotReader interface {
	ListByClassSince(ctx context.Context, classID int64, since time.Time) ([]models.DailySnapshot, error)
}

// StatsExport bundles a rendered stats report for download.
type StatsExport struct {
	FileName    string
	ContentType string
	Content     []byte
}

// StatsService computes time-windowed study statistics from daily snapshots.
type StatsService struct {
	guard     classAuthorizer
	members   memberLister
	snapshots snapshotReader
	cache     *CacheService
	metrics   *MetricsService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
	now       func() time.Time
}

// NewStatsService constructs a StatsService.
func NewStatsService(guard classAuthorizer, members memberLister, snapshots snapshotReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		guard:     guard,
		members:   members,
		snapshots: snapshots,
		cache:     cache,
		metrics:   metrics,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
		now:       time.Now,
	}
}

// ClassStats aggregates per-member and class-wide study time over the
// period's window, serving from cache when possible.
func (s *StatsService) ClassStats(ctx context.Context, teacherID, classID int64, period models.StatsPeriod) (*models.ClassStats, error) {
	if !period.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "period must be daily, weekly or monthly")
	}
	if _, err := s.guard.Authorize(ctx, teacherID, classID); err != nil {
		return nil, err
	}

	cacheKey := statsCacheKey(classID, period)
	var cached models.ClassStats
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	start := time.Now()
	stats, err := s.compute(ctx, classID, period)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDBQuery("class_stats", time.Since(start))

	if err := s.cache.Set(ctx, cacheKey, stats, 0); err != nil {
		s.logger.Warn("cache class stats", zap.Int64("class_id", classID), zap.Error(err))
	}
	return stats, nil
}

func (s *StatsService) compute(ctx context.Context, classID int64, period models.StatsPeriod) (*models.ClassStats, error) {
	members, err := s.members.ListProfilesByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list members")
	}

	windowStart := s.windowStart(period)
	snapshots, err := s.snapshots.ListByClassSince(ctx, classID, windowStart)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load snapshots")
	}

	byMember := make(map[int64][]models.DailySnapshot, len(members))
	for _, snap := range snapshots {
		byMember[snap.MemberID] = append(byMember[snap.MemberID], snap)
	}

	memberStats := make([]models.MemberStats, 0, len(members))
	summary := models.ClassStatsSummary{TotalMembers: len(members)}
	for _, member := range members {
		ms := models.MemberStats{
			MemberID:      member.ID,
			StudentUserID: member.StudentUserID,
		}
		if member.DisplayName != nil {
			ms.DisplayName = *member.DisplayName
		}
		own := byMember[member.ID]
		for _, snap := range own {
			ms.TotalStudyMin += snap.TotalStudyMin
			if snap.TotalStudyMin > 0 {
				ms.ActiveDays++
			}
		}
		if len(own) > 0 {
			ms.AvgStudyMin = roundDiv(ms.TotalStudyMin, len(own))
		}
		summary.TotalStudyMin += ms.TotalStudyMin
		if ms.TotalStudyMin > 0 {
			summary.ActiveMembers++
		}
		memberStats = append(memberStats, ms)
	}
	if summary.ActiveMembers > 0 {
		summary.AvgStudyMinPerMember = roundDiv(summary.TotalStudyMin, summary.ActiveMembers)
	}

	sort.SliceStable(memberStats, func(i, j int) bool {
		return memberStats[i].TotalStudyMin > memberStats[j].TotalStudyMin
	})

	chart := make(map[string]*models.ChartPoint)
	for _, snap := range snapshots {
		day := snap.SnapshotDate.Format("2006-01-02")
		point, ok := chart[day]
		if !ok {
			point = &models.ChartPoint{Date: day}
			chart[day] = point
		}
		point.TotalStudyMin += snap.TotalStudyMin
		if snap.TotalStudyMin > 0 {
			point.ActiveMembers++
		}
	}
	days := make([]string, 0, len(chart))
	for day := range chart {
		days = append(days, day)
	}
	sort.Strings(days)
	chartData := make([]models.ChartPoint, 0, len(days))
	for _, day := range days {
		chartData = append(chartData, *chart[day])
	}

	return &models.ClassStats{
		Period:      period,
		Summary:     summary,
		ChartData:   chartData,
		MemberStats: memberStats,
	}, nil
}

// ExportClassStats renders the current stats payload as CSV or PDF.
func (s *StatsService) ExportClassStats(ctx context.Context, teacherID, classID int64, period models.StatsPeriod, format string) (*StatsExport, error) {
	class, err := s.guard.Authorize(ctx, teacherID, classID)
	if err != nil {
		return nil, err
	}
	stats, err := s.ClassStats(ctx, teacherID, classID, period)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Student", "Display Name", "Total Study (min)", "Avg Study (min)", "Active Days"},
	}
	for _, ms := range stats.MemberStats {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student":           ms.StudentUserID,
			"Display Name":      ms.DisplayName,
			"Total Study (min)": strconv.Itoa(ms.TotalStudyMin),
			"Avg Study (min)":   strconv.Itoa(ms.AvgStudyMin),
			"Active Days":       strconv.Itoa(ms.ActiveDays),
		})
	}

	switch format {
	case "", "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &StatsExport{
			FileName:    fmt.Sprintf("class-%d-stats-%s.csv", classID, period),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case "pdf":
		summaryLines := []string{
			fmt.Sprintf("Members: %d (active %d)", stats.Summary.TotalMembers, stats.Summary.ActiveMembers),
			fmt.Sprintf("Total study: %d min, avg per active member: %d min", stats.Summary.TotalStudyMin, stats.Summary.AvgStudyMinPerMember),
		}
		content, err := s.pdf.Render(dataset, fmt.Sprintf("%s - %s study report", class.Name, period), summaryLines)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &StatsExport{
			FileName:    fmt.Sprintf("class-%d-stats-%s.pdf", classID, period),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

// InvalidateClass drops cached stats after roster or attendance writes.
func (s *StatsService) InvalidateClass(ctx context.Context, classID int64) {
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("stats:class:%d:*", classID)); err != nil {
		s.logger.Warn("invalidate class stats", zap.Int64("class_id", classID), zap.Error(err))
	}
}

// windowStart truncates "now" to local midnight and walks back by period:
// daily covers the last 7 calendar days inclusive of today, weekly the last
// 28 days, monthly the last 3 calendar months.
func (s *StatsService) windowStart(period models.StatsPeriod) time.Time {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case models.StatsPeriodDaily:
		return midnight.AddDate(0, 0, -6)
	case models.StatsPeriodWeekly:
		return midnight.AddDate(0, 0, -27)
	default:
		return midnight.AddDate(0, -3, 0)
	}
}

func statsCacheKey(classID int64, period models.StatsPeriod) string {
	return fmt.Sprintf("stats:class:%d:%s", classID, period)
}

func roundDiv(total, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}
