package job

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type JobDTO struct {
	Id                 int     `json:"id"`
	Hashtag            string  `json:"hashtag"`
	Name               string  `json:"name"`
	ShortName          string  `json:"shortName"`
	ContractedHours    float64 `json:"contractedHours"`
	AnnualHolidayHours float64 `json:"annualHolidayHours"`
	ProRataBankHoliday bool    `json:"proRataBankHoliday"`
	EmploymentStart    string  `json:"employmentStart"`
	EmploymentEnd      string  `json:"employmentEnd,omitempty"`
	FlexiOffsetMinutes int     `json:"flexiOffsetMinutes,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing jobs")
	w.Header().Set("Content-Type", "application/json")
	jobs, err := h.service.GetJobs(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]JobDTO, 0, len(jobs))
	for _, job := range jobs {
		dtos = append(dtos, jobToDTO(job))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new job")
	w.Header().Set("Content-Type", "application/json")
	var dto JobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	job, err := dtoToJob(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateJob(r.Context(), job)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(jobToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating job")
	w.Header().Set("Content-Type", "application/json")
	jobId, err := strconv.Atoi(mux.Vars(r)["jobId"])
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}
	var dto JobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	job, err := dtoToJob(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	job.Id = jobId

	updated, err := h.service.UpdateJob(r.Context(), job)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(jobToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting job")
	jobId, err := strconv.Atoi(mux.Vars(r)["jobId"])
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteJob(r.Context(), jobId); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrJobNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrDuplicateHashtag), errors.Is(err, ErrInvalidHashtag):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func jobToDTO(job *Job) JobDTO {
	dto := JobDTO{
		Id:                 job.Id,
		Hashtag:            job.Hashtag,
		Name:               job.Name,
		ShortName:          job.ShortName,
		ContractedHours:    job.ContractedHours,
		AnnualHolidayHours: job.AnnualHolidayHours,
		ProRataBankHoliday: job.ProRataBankHoliday,
		EmploymentStart:    job.EmploymentStart.Format(time.DateOnly),
		FlexiOffsetMinutes: job.FlexiOffsetMinutes,
	}
	if !job.EmploymentEnd.Equal(NeverEnds) {
		dto.EmploymentEnd = job.EmploymentEnd.Format(time.DateOnly)
	}
	return dto
}

func dtoToJob(dto JobDTO) (*Job, error) {
	job := NewJob(dto.Hashtag)
	job.Name = dto.Name
	job.ShortName = dto.ShortName
	job.ContractedHours = dto.ContractedHours
	job.AnnualHolidayHours = dto.AnnualHolidayHours
	job.ProRataBankHoliday = dto.ProRataBankHoliday
	job.FlexiOffsetMinutes = dto.FlexiOffsetMinutes

	start, err := time.ParseInLocation(time.DateOnly, dto.EmploymentStart, time.UTC)
	if err != nil {
		return nil, errors.New("invalid employmentStart date")
	}
	job.EmploymentStart = start
	if dto.EmploymentEnd != "" {
		end, err := time.ParseInLocation(time.DateOnly, dto.EmploymentEnd, time.UTC)
		if err != nil {
			return nil, errors.New("invalid employmentEnd date")
		}
		job.EmploymentEnd = end
	}
	return job, nil
}
