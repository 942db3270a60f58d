package timesheet

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/caltime/caltime/pkg/user"
	log "github.com/sirupsen/logrus"
)

type WeekSummaryDTO struct {
	Week       string       `json:"week"`
	Current    bool         `json:"current,omitempty"`
	Jobs       []JobWeekDTO `json:"jobs"`
	TotalHours float64      `json:"totalHours"`
}

type JobWeekDTO struct {
	JobId      int     `json:"jobId"`
	Hashtag    string  `json:"hashtag"`
	ShortName  string  `json:"shortName"`
	TotalHours float64 `json:"totalHours"`
	DiffHours  float64 `json:"diffHours"`
	FlexiHours float64 `json:"flexiHours"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	log.Debug("Building timesheet view")
	w.Header().Set("Content-Type", "application/json")

	rows, err := h.service.GetTimesheet(r.Context())
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			http.Error(w, "user not found", http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]WeekSummaryDTO, 0, len(rows))
	for _, row := range rows {
		dto := WeekSummaryDTO{
			Week:       row.Week.Format(time.DateOnly),
			Current:    row.Current,
			TotalHours: hours(row.TotalMinutes),
		}
		for _, jobWeek := range row.Jobs {
			dto.Jobs = append(dto.Jobs, JobWeekDTO{
				JobId:      jobWeek.JobId,
				Hashtag:    jobWeek.Hashtag,
				ShortName:  jobWeek.ShortName,
				TotalHours: hours(jobWeek.TotalMinutes),
				DiffHours:  hours(jobWeek.BalanceMinutes),
				FlexiHours: hours(jobWeek.FlexiMinutes),
			})
		}
		dtos = append(dtos, dto)
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func hours(minutes int) float64 {
	return float64(minutes) / 60
}
