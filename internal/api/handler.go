package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"fitscore/internal/models"
	"fitscore/internal/scoring"
	"fitscore/internal/tracker"

	log "github.com/sirupsen/logrus"
)

// EntryDTO запись тренировки в ответах API. Дата в формате DD.MM.YYYY.
type EntryDTO struct {
	Date     string  `json:"date"`
	Category string  `json:"category"`
	RawValue int     `json:"rawValue"`
	Score    float64 `json:"score"`
	Comment  string  `json:"comment,omitempty"`
	Unsaved  bool    `json:"unsaved,omitempty"`
}

// ScoreResponse показатели за окно в 28 дней на дату Date
type ScoreResponse struct {
	Date        string             `json:"date"`
	WindowDays  int                `json:"windowDays"`
	PerCategory map[string]float64 `json:"perCategory"`
	Overall     float64            `json:"overall"`
	Formatted   map[string]string  `json:"formatted"`
	Empty       bool               `json:"empty"`
	Degraded    bool               `json:"degraded,omitempty"`
}

// CreateEntryRequest тело POST /api/entries. Пустая дата означает сегодня.
type CreateEntryRequest struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	RawValue *int   `json:"rawValue"`
	Comment  string `json:"comment"`
}

// CreateEntryResponse результат добавления; при сбое записи Saved == false и заполнен Error
type CreateEntryResponse struct {
	Entry EntryDTO      `json:"entry"`
	Saved bool          `json:"saved"`
	Error string        `json:"error,omitempty"`
	Score ScoreResponse `json:"score"`
}

// Handler HTTP обработчики поверх tracker.Service
type Handler struct {
	tracker *tracker.Service
}

// NewHandler создаёт обработчики
func NewHandler(svc *tracker.Service) *Handler {
	return &Handler{tracker: svc}
}

// HandleScore GET /api/score?date=DD.MM.YYYY
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	ref := h.tracker.Today()
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := models.ParseDate(d)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ref = parsed
	}

	v := h.tracker.DashboardAt(r.Context(), ref)
	writeJSON(w, http.StatusOK, toScoreResponse(v))
}

// HandleEntries GET /api/entries, история по убыванию даты
func (h *Handler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	v := h.tracker.Dashboard(r.Context())
	if v.Degraded {
		w.Header().Set("X-Store-Degraded", "true")
	}

	out := make([]EntryDTO, 0, len(v.History))
	for _, e := range v.History {
		out = append(out, toEntryDTO(e, false))
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleCreate POST /api/entries
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	candidate, err := h.toCandidate(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.tracker.Submit(r.Context(), candidate)
	if err != nil {
		if errors.Is(err, tracker.ErrInvalidCandidate) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Errorf("submit: %s", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := CreateEntryResponse{
		Entry: toEntryDTO(res.Entry, !res.Saved),
		Saved: res.Saved,
		Score: toScoreResponse(res.View),
	}
	status := http.StatusCreated
	if !res.Saved {
		resp.Error = res.SaveErr.Error()
		status = http.StatusBadGateway
	}
	writeJSON(w, status, resp)
}

// HandleHealth GET /health
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) toCandidate(req CreateEntryRequest) (models.Candidate, error) {
	c := models.Candidate{Date: h.tracker.Today(), Comment: req.Comment}

	if req.Date != "" {
		d, err := models.ParseDate(req.Date)
		if err != nil {
			return c, err
		}
		c.Date = d
	}

	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return c, err
	}
	c.Category = category

	if req.RawValue == nil {
		return c, errors.New("rawValue is required")
	}
	c.RawValue = *req.RawValue
	return c, nil
}

func toEntryDTO(e models.Entry, unsaved bool) EntryDTO {
	return EntryDTO{
		Date:     e.FormatDate(),
		Category: string(e.Category),
		RawValue: e.RawValue,
		Score:    e.Score,
		Comment:  e.Comment,
		Unsaved:  unsaved,
	}
}

func toScoreResponse(v *tracker.View) ScoreResponse {
	per := make(map[string]float64, len(v.Summary.PerCategory))
	for c, s := range v.Summary.PerCategory {
		per[string(c)] = s
	}
	return ScoreResponse{
		Date:        v.Today.Format(models.DateLayout),
		WindowDays:  scoring.WindowDays,
		PerCategory: per,
		Overall:     v.Summary.Overall,
		Formatted:   v.Summary.Formatted(),
		Empty:       v.Empty(),
		Degraded:    v.Degraded,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("write response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
