package holiday

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/caltime/caltime/pkg/bankholiday"
	"github.com/caltime/caltime/pkg/calendar"
	"github.com/caltime/caltime/pkg/job"
	"github.com/caltime/caltime/pkg/user"
	log "github.com/sirupsen/logrus"
)

// fullTimeWeekHours is the working week a non-pro-rata bank holiday
// allowance assumes; a pro-rata job gets contracted/fullTimeWeekHours of it.
const (
	fullTimeWeekHours     = 37.5
	bankHolidayDayHours   = 7.5
	statutoryWeeksPerYear = 5.6
)

// DayUsage is holiday or bank time taken on a single day.
type DayUsage struct {
	Date    time.Time
	Minutes int
}

// JobReport is one job's holiday usage for a year.
type JobReport struct {
	JobId                   int
	Hashtag                 string
	ShortName               string
	Holiday                 []DayUsage
	Bank                    []DayUsage
	HolidayMinutes          int
	BankMinutes             int
	HolidayAllowanceMinutes int
	BankAllowanceMinutes    int
}

// Report is the yearly holiday report across all of the user's jobs.
type Report struct {
	Year         int
	BankHolidays map[string]time.Time
	Jobs         []JobReport
}

type Service interface {
	GetReport(ctx context.Context, year int) (Report, error)
}

type ServiceImpl struct {
	source       calendar.EventSource
	jobRepo      job.Repository
	bankHolidays bankholiday.Client
}

func NewService(source calendar.EventSource, jobRepo job.Repository, bankHolidays bankholiday.Client) *ServiceImpl {
	return &ServiceImpl{source: source, jobRepo: jobRepo, bankHolidays: bankHolidays}
}

func (s *ServiceImpl) GetReport(ctx context.Context, year int) (Report, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to get current user: %w", err)
	}

	jobs, err := s.jobRepo.GetJobs(ctx, currentUser.Id)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load jobs: %w", err)
	}

	holidays, err := s.bankHolidays.Holidays(ctx, year)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load bank holidays: %w", err)
	}

	location, err := time.LoadLocation(currentUser.Settings.Timezone)
	if err != nil {
		log.Warnf("invalid timezone %q for user %d, falling back to UTC", currentUser.Settings.Timezone, currentUser.Id)
		location = time.UTC
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, location)
	to := from.AddDate(1, 0, 0)

	holidayByJob := map[int]map[time.Time]int{}
	bankByJob := map[int]map[time.Time]int{}
	for event, err := range s.source.Events(ctx, from, to, currentUser.Settings.CalendarId) {
		if err != nil {
			return Report{}, fmt.Errorf("failed to read calendar events: %w", err)
		}
		tags := event.Hashtags()
		var usage map[int]map[time.Time]int
		switch {
		case tags["#holiday"]:
			usage = holidayByJob
		case tags["#bank"]:
			usage = bankByJob
		default:
			continue
		}
		day := dayOf(event.Start)
		for _, j := range jobs {
			if !tags[j.Hashtag] {
				continue
			}
			if usage[j.Id] == nil {
				usage[j.Id] = map[time.Time]int{}
			}
			usage[j.Id][day] += event.Duration()
		}
	}

	report := Report{Year: year, BankHolidays: holidays}
	for _, j := range jobs {
		jobReport := JobReport{
			JobId:                   j.Id,
			Hashtag:                 j.Hashtag,
			ShortName:               j.ShortName,
			Holiday:                 sortedUsage(holidayByJob[j.Id]),
			Bank:                    sortedUsage(bankByJob[j.Id]),
			HolidayAllowanceMinutes: holidayAllowanceMinutes(j),
			BankAllowanceMinutes:    bankAllowanceMinutes(j, len(holidays)),
		}
		jobReport.HolidayMinutes = totalMinutes(jobReport.Holiday)
		jobReport.BankMinutes = totalMinutes(jobReport.Bank)
		report.Jobs = append(report.Jobs, jobReport)
	}
	return report, nil
}

// holidayAllowanceMinutes prefers an explicit annual allowance on the
// job, otherwise applies the statutory 5.6 weeks of contracted hours.
func holidayAllowanceMinutes(j *job.Job) int {
	if j.AnnualHolidayHours > 0 {
		return int(j.AnnualHolidayHours * 60)
	}
	return int(j.ContractedHours * statutoryWeeksPerYear * 60)
}

func bankAllowanceMinutes(j *job.Job, holidayCount int) int {
	factor := 1.0
	if j.ProRataBankHoliday {
		factor = j.ContractedHours / fullTimeWeekHours
	}
	return int(factor * float64(holidayCount) * bankHolidayDayHours * 60)
}

func dayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sortedUsage(byDay map[time.Time]int) []DayUsage {
	var usage []DayUsage
	for day, minutes := range byDay {
		usage = append(usage, DayUsage{Date: day, Minutes: minutes})
	}
	sort.Slice(usage, func(i, k int) bool {
		return usage[i].Date.Before(usage[k].Date)
	})
	return usage
}

func totalMinutes(usage []DayUsage) int {
	total := 0
	for _, day := range usage {
		total += day.Minutes
	}
	return total
}
