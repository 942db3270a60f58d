package holiday

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/caltime/caltime/pkg/user"
	log "github.com/sirupsen/logrus"
)

type ReportDTO struct {
	Year         int              `json:"year"`
	BankHolidays []BankHolidayDTO `json:"bankHolidays"`
	Jobs         []JobReportDTO   `json:"jobs"`
}

type BankHolidayDTO struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

type JobReportDTO struct {
	JobId                 int           `json:"jobId"`
	Hashtag               string        `json:"hashtag"`
	ShortName             string        `json:"shortName"`
	Holiday               []DayUsageDTO `json:"holiday"`
	Bank                  []DayUsageDTO `json:"bank"`
	HolidayHours          float64       `json:"holidayHours"`
	BankHours             float64       `json:"bankHours"`
	HolidayAllowanceHours float64       `json:"holidayAllowanceHours"`
	BankAllowanceHours    float64       `json:"bankAllowanceHours"`
}

type DayUsageDTO struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	log.Debugf("Building holiday report for year %d", year)

	report, err := h.service.GetReport(r.Context(), year)
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			http.Error(w, "user not found", http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(toReportDTO(report)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func toReportDTO(report Report) ReportDTO {
	dto := ReportDTO{Year: report.Year}
	for title, date := range report.BankHolidays {
		dto.BankHolidays = append(dto.BankHolidays, BankHolidayDTO{
			Title: title,
			Date:  date.Format(time.DateOnly),
		})
	}
	sort.Slice(dto.BankHolidays, func(i, k int) bool {
		return dto.BankHolidays[i].Date < dto.BankHolidays[k].Date
	})
	for _, jobReport := range report.Jobs {
		dto.Jobs = append(dto.Jobs, JobReportDTO{
			JobId:                 jobReport.JobId,
			Hashtag:               jobReport.Hashtag,
			ShortName:             jobReport.ShortName,
			Holiday:               toUsageDTOs(jobReport.Holiday),
			Bank:                  toUsageDTOs(jobReport.Bank),
			HolidayHours:          hours(jobReport.HolidayMinutes),
			BankHours:             hours(jobReport.BankMinutes),
			HolidayAllowanceHours: hours(jobReport.HolidayAllowanceMinutes),
			BankAllowanceHours:    hours(jobReport.BankAllowanceMinutes),
		})
	}
	return dto
}

func toUsageDTOs(usage []DayUsage) []DayUsageDTO {
	dtos := make([]DayUsageDTO, 0, len(usage))
	for _, day := range usage {
		dtos = append(dtos, DayUsageDTO{
			Date:  day.Date.Format(time.DateOnly),
			Hours: hours(day.Minutes),
		})
	}
	return dtos
}

func hours(minutes int) float64 {
	return float64(minutes) / 60
}
