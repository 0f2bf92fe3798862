package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"quiz-event-service/internal/app"
	"quiz-event-service/internal/domain"
)

// Handler exposes the quiz use cases as a JSON API.
type Handler struct {
	service *app.QuizService
}

func NewHandler(service *app.QuizService) *Handler {
	return &Handler{service: service}
}

// NewRouter assembles the full HTTP surface: the JSON API, the websocket
// monitor feed and, when staticDir is set, the pre-built frontend with an
// index fallback for client-side routes.
func NewRouter(service *app.QuizService, monitor *app.Monitor, corsOrigins []string, staticDir string) http.Handler {
	h := NewHandler(service)
	ws := NewMonitorHandler(service, monitor)

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", h.Questions)
		r.Post("/validate-id", h.ValidateID)
		r.Post("/heartbeat", h.Heartbeat)
		r.Post("/check-answer", h.CheckAnswer)
		r.Get("/hint/{questionID}", h.Hint)
		r.Post("/save-progress", h.SaveProgress)
		r.Get("/get-progress/{userID}", h.GetProgress)
		r.Post("/result", h.SubmitResult)
		r.Get("/results/download", h.DownloadResults)
		r.Get("/results/json", h.ResultsJSON)
		r.Get("/results/stats", h.Stats)
	})

	r.Get("/ws/monitor", ws.ServeWS)

	if staticDir != "" {
		mountStatic(r, staticDir)
	}
	return r
}

func (h *Handler) Questions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Questions())
}

func (h *Handler) ValidateID(w http.ResponseWriter, r *http.Request) {
	var req validateIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	decision, err := h.service.ValidateID(r.Context(), trimmed(req.UserID))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validateIDResponse{Valid: decision.Granted, Message: decision.Message})
}

func (h *Handler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	var req heartbeatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	alive, err := h.service.Heartbeat(r.Context(), trimmed(req.UserID))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !alive {
		writeJSON(w, http.StatusNotFound, heartbeatResponse{Success: false, Message: "Сессия не найдена"})
		return
	}
	writeJSON(w, http.StatusOK, heartbeatResponse{Success: true})
}

func (h *Handler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	var req checkAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.QuestionID == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid question ID"})
		return
	}
	correct, score, err := h.service.CheckAnswer(*req.QuestionID, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkAnswerResponse{Correct: correct, Score: score})
}

func (h *Handler) Hint(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "questionID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid question ID"})
		return
	}
	hint, err := h.service.Hint(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hintResponse{Hint: hint})
}

func (h *Handler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	var req saveProgressRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.service.SaveProgress(r.Context(), domain.Progress{
		UserID:         trimmed(req.UserID),
		CurrentIndex:   req.CurrentIndex,
		UserAnswers:    req.UserAnswers,
		QuestionTimers: req.QuestionTimers,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.service.GetProgress(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progressResponse{Progress: progress})
}

func (h *Handler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	var req resultRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID := trimmed(req.UserID)
	if userID == "" {
		userID = "Неизвестный"
	}
	result, grade, err := h.service.SubmitResult(r.Context(), userID, req.Answers, req.TotalTime)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{
		Score:    result.Score,
		MaxScore: result.MaxScore,
		Percent:  result.Percent,
		Grade:    grade,
	})
}

func (h *Handler) DownloadResults(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="quiz_results.csv"`)
	if err := h.service.ExportCSV(r.Context(), w); err != nil {
		if errors.Is(err, domain.ErrNoResults) {
			w.Header().Del("Content-Disposition")
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Результаты не найдены"})
			return
		}
		writeServiceError(w, err)
	}
}

func (h *Handler) ResultsJSON(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Results(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if results == nil {
		results = []domain.AttemptResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	results, err := h.service.Results(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if results == nil {
		results = []domain.AttemptResult{}
	}
	writeJSON(w, http.StatusOK, statsResponse{
		TotalUsers:     stats.TotalUsers,
		AverageScore:   stats.AverageScore,
		AveragePercent: stats.AveragePercent,
		Results:        results,
	})
}

// mountStatic serves the built frontend; unknown paths fall back to
// index.html so client-side routing keeps working after a reload.
func mountStatic(r chi.Router, dir string) {
	fs := http.FileServer(http.Dir(dir))
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+req.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, req)
			return
		}
		http.ServeFile(w, req, filepath.Join(dir, "index.html"))
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}
