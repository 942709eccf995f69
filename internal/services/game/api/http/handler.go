package httpapi

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/louisbranch/abacus/internal/abacus/placevalue"
	apperrors "github.com/louisbranch/abacus/internal/platform/errors"
	"github.com/louisbranch/abacus/internal/platform/id"
	"github.com/louisbranch/abacus/internal/platform/otel"
	"github.com/louisbranch/abacus/internal/platform/telemetry/metrics"
	"github.com/louisbranch/abacus/internal/random"
	"github.com/louisbranch/abacus/internal/services/shared/httpx"
	"github.com/louisbranch/abacus/internal/services/shared/i18nhttp"
	"go.opentelemetry.io/otel/trace"
)

// Options configures the API handler. Zero values select production
// defaults.
type Options struct {
	// DefaultCap is the per-rod cap used when a request omits one.
	DefaultCap int
	// Metrics may be nil to disable counting and the /metrics route.
	Metrics *metrics.Collectors
	// Seeds draws server seeds for tasks without a client seed.
	Seeds func() (int64, error)
	// IDs assigns task identifiers.
	IDs    func() (string, error)
	Logger *log.Logger
}

// Handler serves the JSON API.
type Handler struct {
	defaultCap int
	metrics    *metrics.Collectors
	seeds      func() (int64, error)
	ids        func() (string, error)
	logger     *log.Logger
	validate   *validator.Validate
	tracer     trace.Tracer
	mux        *http.ServeMux
}

// New builds the API handler with its middleware chain applied.
func New(opts Options) http.Handler {
	h := newHandler(opts)
	return httpx.Chain(h.mux,
		httpx.RequestID("game"),
		httpx.RecoverPanic(h.logger),
		httpx.LogRequests(h.logger),
	)
}

func newHandler(opts Options) *Handler {
	h := &Handler{
		defaultCap: placevalue.ClampCap(opts.DefaultCap),
		metrics:    opts.Metrics,
		seeds:      opts.Seeds,
		ids:        opts.IDs,
		logger:     opts.Logger,
		validate:   newValidator(),
		tracer:     otel.Tracer("game/api/http"),
		mux:        http.NewServeMux(),
	}
	if opts.DefaultCap == 0 {
		h.defaultCap = placevalue.DefaultCap
	}
	if h.seeds == nil {
		h.seeds = random.NewSeed
	}
	if h.ids == nil {
		h.ids = id.NewID
	}
	if h.logger == nil {
		h.logger = log.Default()
	}

	h.route("GET /v1/place-values", "/v1/place-values", h.handlePlaceValues)
	h.route("POST /v1/encode", "/v1/encode", h.handleEncode)
	h.route("POST /v1/decode", "/v1/decode", h.handleDecode)
	h.route("POST /v1/tasks", "/v1/tasks", h.handleTask)
	h.route("POST /v1/verify", "/v1/verify", h.handleVerify)
	h.route("POST /v1/beads/{op}", "/v1/beads", h.handleBeads)
	h.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if h.metrics != nil {
		h.mux.Handle("GET /metrics", h.metrics.Handler())
	}
	return h
}

// route registers fn and counts its responses under a fixed route label.
func (h *Handler) route(pattern, label string, fn func(http.ResponseWriter, *http.Request) error) {
	h.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		rec := &httpx.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		if err := fn(rec, r); err != nil {
			h.writeError(rec, r, err)
		}
		h.metrics.Request(label, rec.Status)
	})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.Wrap(apperrors.CodeUnknown, err.Error(), err)
	}
	status := appErr.Code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	tag := i18nhttp.ResolveTag(r)
	_ = httpx.WriteJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(appErr.Code),
		Message: appErr.LocalizedMessage(tag.String()),
	}})
}

func (h *Handler) capOrDefault(requested *int) int {
	if requested == nil {
		return h.defaultCap
	}
	return placevalue.ClampCap(*requested)
}
