package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/layout"
	"github.com/matzehuels/lotplan/pkg/publish"
	"github.com/matzehuels/lotplan/pkg/render"
	"github.com/matzehuels/lotplan/pkg/store"
)

// maxBodyBytes caps request bodies; no request carries more than a few fields.
const maxBodyBytes = 1 << 16

// layoutResponse is the JSON view of the whole layout.
type layoutResponse struct {
	Canvas     layout.Canvas `json:"canvas"`
	SpotWidth  float64       `json:"spot_width"`
	SpotLength float64       `json:"spot_length"`
	NextID     int           `json:"next_id"`
	Spots      []layout.Spot `json:"spots"`
	Violations []int         `json:"violations"`
}

type canvasRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type spotRequest struct {
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Rotation float64  `json:"rotation"`
}

type positionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type rotateRequest struct {
	By *float64 `json:"by"`
}

type labelRequest struct {
	Label string `json:"label"`
}

type suggestionResponse struct {
	Available bool         `json:"available"`
	Pose      *layout.Pose `json:"pose,omitempty"`
	Reason    string       `json:"reason,omitempty"`
}

func (s *Server) snapshot() layoutResponse {
	size := s.state.SpotSize()
	spots := s.state.Spots()
	if spots == nil {
		spots = []layout.Spot{}
	}
	violations := s.state.Violations()
	if violations == nil {
		violations = []int{}
	}
	return layoutResponse{
		Canvas:     s.state.Canvas(),
		SpotWidth:  size.W,
		SpotLength: size.H,
		NextID:     s.state.NextID(),
		Spots:      spots,
		Violations: violations,
	}
}

// decode reads a JSON body into v. An empty body leaves v untouched and
// reports false.
func decode(w http.ResponseWriter, r *http.Request, v any) (bool, error) {
	if r.Body == nil || r.ContentLength == 0 {
		return false, nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if stderrors.Is(err, io.EOF) {
			return false, nil
		}
		return false, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return true, nil
}

func spotID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "spot id must be a positive integer (got %q)", raw)
	}
	return id, nil
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) handleLayoutSVG(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var opts []render.Option
	if r.URL.Query().Get("ghost") != "false" {
		if ghost, err := s.state.Suggest(); err == nil {
			opts = append(opts, render.WithGhost(ghost))
		}
	}
	svg := render.SVG(s.state, opts...)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req canvasRequest
	if ok, err := decode(w, r, &req); err != nil || !ok {
		s.writeError(w, r, bodyRequired(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.ResizeCanvas(req.Width, req.Height); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.commit()
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) handleAddSpot(w http.ResponseWriter, r *http.Request) {
	var req spotRequest
	hasBody, err := decode(w, r, &req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if hasBody && (req.X == nil) != (req.Y == nil) {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "x and y must be given together"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var sp layout.Spot
	if hasBody && req.X != nil {
		sp, err = s.state.AddAt(layout.Pose{X: *req.X, Y: *req.Y, Rotation: req.Rotation})
	} else {
		sp, err = s.state.Add()
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.commit()
	writeJSON(w, http.StatusCreated, sp)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ghost, err := s.state.Suggest()
	if err != nil {
		if !errors.Is(err, errors.ErrCodeNoSuggestion) {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, suggestionResponse{Reason: errors.UserMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, suggestionResponse{Available: true, Pose: &ghost})
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, err := s.state.AcceptSuggestion()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.commit()
	writeJSON(w, http.StatusCreated, sp)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id, err := spotID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req positionRequest
	if ok, err := decode(w, r, &req); err != nil || !ok {
		s.writeError(w, r, bodyRequired(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.Move(id, req.X, req.Y); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.commit()
	s.writeSpot(w, id)
}

func (s *Server) handleRotate(w http.ResponseWriter, r *http.Request) {
	id, err := spotID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req rotateRequest
	if _, err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	delta := layout.DefaultRotateStep
	if req.By != nil {
		delta = *req.By
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.Rotate(id, delta); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.commit()
	s.writeSpot(w, id)
}

func (s *Server) handleRelabel(w http.ResponseWriter, r *http.Request) {
	id, err := spotID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req labelRequest
	if ok, err := decode(w, r, &req); err != nil || !ok {
		s.writeError(w, r, bodyRequired(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.Relabel(id, req.Label); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.commit()
	s.writeSpot(w, id)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	id, err := spotID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.Remove(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.commit()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "no publication store configured"))
		return
	}
	var lot publish.Lot
	if ok, err := decode(w, r, &lot); err != nil || !ok {
		s.writeError(w, r, bodyRequired(err))
		return
	}

	s.mu.Lock()
	pub, err := publish.Build(lot, s.state)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := store.Save(r.Context(), s.store, pub); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("published", "id", pub.ID, "lot", pub.Lot.Name, "spots", pub.TotalSpots)
	writeJSON(w, http.StatusCreated, pub)
}

// writeSpot responds with the current state of spot id. Callers hold s.mu.
func (s *Server) writeSpot(w http.ResponseWriter, id int) {
	sp, _ := s.state.Spot(id)
	writeJSON(w, http.StatusOK, sp)
}

func bodyRequired(err error) error {
	if err != nil {
		return err
	}
	return errors.New(errors.ErrCodeInvalidInput, "request body is required")
}
