package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/kasuboski/mirra/pkg/logger"
	"github.com/kasuboski/mirra/pkg/manager"
	"github.com/kasuboski/mirra/pkg/storage"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type GenericResponse struct {
	Error    *string `json:"error,omitempty"`
	Response any     `json:"response"`
}

// maxStatusIDs bounds one batched status lookup
const maxStatusIDs = 500

// Server houses the dependencies of the http surface: logger, manager,
// and the scheduler driving background syncs
type Server struct {
	baseLogger *zap.SugaredLogger
	manager    manager.MediaManager
	scheduler  *manager.Scheduler
	registry   *manager.JobRegistry
}

// New creates a new availability server
func New(logger *zap.SugaredLogger, m manager.MediaManager, scheduler *manager.Scheduler, registry *manager.JobRegistry) Server {
	return Server{
		baseLogger: logger,
		manager:    m,
		scheduler:  scheduler,
		registry:   registry,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	msg := err.Error()
	return writeResponse(w, status, GenericResponse{
		Error: &msg,
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

// Serve starts the http server and is a blocking call
func (s Server) Serve(port int) error {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)
	rtr.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/sync", s.TriggerSync()).Methods(http.MethodPost)
	v1.HandleFunc("/statuses", s.GetStatuses()).Methods(http.MethodGet)
	v1.HandleFunc("/stats", s.GetStats()).Methods(http.MethodGet)
	v1.HandleFunc("/jobs", s.ListJobs()).Methods(http.MethodGet)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
	)(rtr)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: corsHandler,
	}

	go func() {
		s.baseLogger.Info("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	s.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}

// TriggerSync kicks off a library sync in the background. The response is
// accepted either way; an in-flight run is reported instead of doubled.
func (s Server) TriggerSync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		runID, started := s.scheduler.TriggerSync(r.Context())
		if !started {
			writeResponse(w, http.StatusAccepted, GenericResponse{
				Response: map[string]any{"started": false, "reason": "sync already running"},
			})
			return
		}

		log.Infow("library sync triggered", "runID", runID)
		writeResponse(w, http.StatusAccepted, GenericResponse{
			Response: map[string]any{"started": true, "runId": runID},
		})
	}
}

// GetStatuses resolves availability statuses for a batch of ids
func (s Server) GetStatuses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		mediaType, ok := storage.ParseMediaType(r.URL.Query().Get("mediaType"))
		if !ok {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("mediaType must be movie or tv"))
			return
		}

		ids, err := parseIDs(r.URL.Query().Get("ids"))
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		fast, _ := strconv.ParseBool(r.URL.Query().Get("fast"))

		statuses, err := s.manager.ResolveStatuses(r.Context(), ids, mediaType, fast)
		if err != nil {
			log.Errorw("failed to resolve statuses", "error", err)
			http.Error(w, "failed to resolve statuses", http.StatusInternalServerError)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{
			Response: statuses,
		})
	}
}

// GetStats reports the mirror aggregates
func (s Server) GetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		stats, err := s.manager.GetSyncStats(r.Context())
		if err != nil {
			log.Errorw("failed to read stats", "error", err)
			http.Error(w, "failed to read stats", http.StatusInternalServerError)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{
			Response: stats,
		})
	}
}

// ListJobs reports background job state
func (s Server) ListJobs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{
			Response: s.registry.Jobs(),
		})
	}
}

func parseIDs(raw string) ([]int32, error) {
	if raw == "" {
		return nil, fmt.Errorf("ids is required")
	}

	parts := strings.Split(raw, ",")
	if len(parts) > maxStatusIDs {
		return nil, fmt.Errorf("too many ids: %d > %d", len(parts), maxStatusIDs)
	}

	ids := make([]int32, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 32)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, int32(id))
	}

	return ids, nil
}
