package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	cgerrors "github.com/matzehuels/clustergraph/pkg/errors"
	"github.com/matzehuels/clustergraph/pkg/layout/engines"
	"github.com/matzehuels/clustergraph/pkg/pipeline"
	"github.com/matzehuels/clustergraph/pkg/topology"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code      cgerrors.Code `json:"code"`
	Message   string        `json:"message"`
	RequestID string        `json:"requestId,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.Version})
}

func (s *Server) handleEngines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"engines": engines.Names(), "default": engines.Default})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	topo, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := topo.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, pipeline.FormatDiagram, "application/json")
}

func (s *Server) handleFlow(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, pipeline.FormatFlow, "application/json")
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, pipeline.FormatSVG, "image/svg+xml")
}

func (s *Server) serveFormat(w http.ResponseWriter, r *http.Request, format, contentType string) {
	opts, err := options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	topo, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.Runner.Execute(r.Context(), topo, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Topology-Hash", res.TopologyHash)
	hit := res.CacheInfo.LayoutHit
	if format == pipeline.FormatFlow {
		hit = res.CacheInfo.FlowHit
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// decode reads a topology body no larger than MaxBodyBytes.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*topology.Topology, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody())
	topo, err := topology.Read(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, cgerrors.Wrap(cgerrors.ErrCodeInvalidInput, errTooLarge{limit: tooLarge.Limit}, "decode topology")
		}
		return nil, cgerrors.Wrap(cgerrors.ErrCodeInvalidInput, err, "decode topology")
	}
	return topo, nil
}

// options maps query parameters onto pipeline options.
func options(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Engine: q.Get("engine")}
	flags := []struct {
		name string
		dst  *bool
		neg  bool
	}{
		{"lenient", &opts.Lenient, false},
		{"refresh", &opts.Refresh, false},
		{"absolute", &opts.Absolute, false},
		{"pairs", &opts.NoPairs, true},
	}
	for _, f := range flags {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, cgerrors.New(cgerrors.ErrCodeInvalidInput, "query parameter %s: %q is not a boolean", f.name, raw)
		}
		*f.dst = v != f.neg
	}
	return opts, nil
}

type errTooLarge struct{ limit int64 }

func (e errTooLarge) Error() string {
	return "request body exceeds " + strconv.FormatInt(e.limit, 10) + " bytes"
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	body := errorBody{
		Code:      cgerrors.GetCode(err),
		Message:   cgerrors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	}
	if body.Code == "" {
		body.Code = cgerrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "id", body.RequestID, "error", err)
		body.Message = "internal error"
	} else {
		s.Logger.Debug("request rejected", "id", body.RequestID, "error", err)
	}
	writeJSON(w, status, body)
}

func statusOf(err error) int {
	var tooLarge errTooLarge
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case cgerrors.IsInputError(err):
		return http.StatusBadRequest
	case cgerrors.Is(err, cgerrors.ErrCodeLayoutFailed):
		return http.StatusUnprocessableEntity
	case cgerrors.Is(err, cgerrors.ErrCodeCanceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
