package controllers

import (
	"net/http"
	"strconv"

	"streakd/internal/badge"
	"streakd/internal/bridge"
	"streakd/internal/explorer"
	"streakd/internal/providers"
	"streakd/internal/reminder"
	"streakd/internal/services"
	"streakd/internal/structures"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger    providers.Logger
	service   services.TrackerServiceInterface
	badge     *badge.Controller
	bridge    *bridge.Bridge
	reminders *reminder.Scheduler
	explorer  explorer.ExplorerInterface
	cache     providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.TrackerServiceInterface, badgeCtrl *badge.Controller, pageBridge *bridge.Bridge, reminders *reminder.Scheduler, problemExplorer explorer.ExplorerInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:    logger,
		service:   service,
		badge:     badgeCtrl,
		bridge:    pageBridge,
		reminders: reminders,
		explorer:  problemExplorer,
		cache:     cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Message implements the cross-context messaging contract. Messages arrive
// from untrusted page and popup contexts, so every action validates its
// fields before acting.
func (ac *ApiController) Message(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var msg structures.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "malformed message")
		return
	}

	switch msg.Action {
	case structures.ActionUpdateBadge:
		ac.badge.Redraw()

	case structures.ActionUpdateReminderTime:
		if err := ac.reminders.InstallDaily(msg.Time); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ac.service.SetReminderTime(msg.Time)

	case structures.ActionStartLoadingBlink:
		ac.badge.StartLoading()

	case structures.ActionStopLoadingBlink:
		ac.badge.StopLoading()

	case structures.ActionProblemSolved:
		if msg.Data == nil {
			writeError(w, http.StatusBadRequest, "problemSolved requires data")
			return
		}
		if msg.Data.Streak < 0 {
			writeError(w, http.StatusBadRequest, "streak must be non-negative")
			return
		}
		ac.service.ApplyCompletion(msg.Data.Streak, msg.Data.Username, msg.Data.Avatar)

	default:
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}

	ac.logger.Debugf(providers.TypePost, "message %s handled", msg.Action)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Status serves the popup payload. Not cached: the countdown must stay
// live.
func (ac *ApiController) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.service.Status())
}

// Mutation ingests one DOM mutation report from the page script.
func (ac *ApiController) Mutation(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var report structures.MutationReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeError(w, http.StatusBadRequest, "malformed mutation report")
		return
	}
	if report.HTML == "" {
		writeError(w, http.StatusBadRequest, "mutation report requires html")
		return
	}
	ac.bridge.Observe(report.HTML)
	w.WriteHeader(http.StatusAccepted)
}

// Problems serves the explorer page: filter, sort and paginate the static
// dataset. A missing dataset is a hard error here, unlike the best-effort
// poll paths, because the page cannot function without it.
func (ac *ApiController) Problems(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := explorer.Query{
		Search:     params.Get("q"),
		Difficulty: params.Get("difficulty"),
		Topic:      params.Get("topic"),
		List:       params.Get("list"),
		Status:     params.Get("status"),
		Sort:       params.Get("sort"),
		Order:      params.Get("order"),
	}
	q.Page, _ = strconv.Atoi(params.Get("page"))
	q.PageSize, _ = strconv.Atoi(params.Get("pageSize"))

	cacheKey := "problems:" + params.Encode()
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	snap := ac.service.Snapshot()
	page, err := ac.explorer.Query(q, snap.CompletedProblems)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	gson, err := json.Marshal(page)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

type completeRequest struct {
	ID        int  `json:"id"`
	Completed bool `json:"completed"`
}

// CompleteProblem toggles one problem in the persisted completed set.
func (ac *ApiController) CompleteProblem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "id must be positive")
		return
	}
	ac.service.SetCompleted(req.ID, req.Completed)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type clickRequest struct {
	ID string `json:"id"`
}

// NotificationClick resolves a clicked notification to a navigation target.
func (ac *ApiController) NotificationClick(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}
	target := ac.reminders.HandleClick(r.Context(), req.ID)
	writeJSON(w, http.StatusOK, map[string]string{"url": target})
}
