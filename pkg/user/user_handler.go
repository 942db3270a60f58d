package user

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Id          int         `json:"id"`
	Uid         string      `json:"uid"`
	Username    string      `json:"username"`
	DisplayName string      `json:"displayName"`
	Settings    SettingsDTO `json:"settings"`
}

type SettingsDTO struct {
	Timezone        string `json:"timezone"`
	CalendarId      string `json:"calendarId"`
	ViewPastWeeks   int    `json:"viewPastWeeks"`
	ViewFutureWeeks int    `json:"viewFutureWeeks"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new user")
	w.Header().Set("Content-Type", "application/json")
	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateUser(r.Context(), dtoToUser(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(userToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	current, err := h.service.GetCurrentUser(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoUser) {
			http.Error(w, "user not found", http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(userToDTO(current)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating user settings")
	w.Header().Set("Content-Type", "application/json")
	var dto SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateCurrentSettings(r.Context(), Settings{
		Timezone:        dto.Timezone,
		CalendarId:      dto.CalendarId,
		ViewPastWeeks:   dto.ViewPastWeeks,
		ViewFutureWeeks: dto.ViewFutureWeeks,
	})
	if err != nil {
		if errors.Is(err, ErrNoUser) {
			http.Error(w, "user not found", http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(userToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func userToDTO(u User) UserDTO {
	return UserDTO{
		Id:          u.Id,
		Uid:         u.Uid,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Settings: SettingsDTO{
			Timezone:        u.Settings.Timezone,
			CalendarId:      u.Settings.CalendarId,
			ViewPastWeeks:   u.Settings.ViewPastWeeks,
			ViewFutureWeeks: u.Settings.ViewFutureWeeks,
		},
	}
}

func dtoToUser(dto UserDTO) User {
	return User{
		Username:    dto.Username,
		DisplayName: dto.DisplayName,
		Settings: Settings{
			Timezone:        dto.Settings.Timezone,
			CalendarId:      dto.Settings.CalendarId,
			ViewPastWeeks:   dto.Settings.ViewPastWeeks,
			ViewFutureWeeks: dto.Settings.ViewFutureWeeks,
		},
	}
}
