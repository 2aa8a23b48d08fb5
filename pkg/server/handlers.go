package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/canvasnap/pkg/align"
	"github.com/matzehuels/canvasnap/pkg/errors"
	"github.com/matzehuels/canvasnap/pkg/geom"
	"github.com/matzehuels/canvasnap/pkg/scene"
)

// =============================================================================
// Stateless
// =============================================================================

type alignCanvasRequest struct {
	Element   geom.ElementBounds `json:"element"`
	Canvas    geom.CanvasInfo    `json:"canvas"`
	Alignment string             `json:"alignment"`
}

type alignElementRequest struct {
	Element   geom.ElementBounds `json:"element"`
	Target    geom.ElementBounds `json:"target"`
	Alignment string             `json:"alignment"`
}

type distributeRequest struct {
	Elements  []geom.ElementBounds `json:"elements"`
	Direction string               `json:"direction"`
	Spacing   *float64             `json:"spacing,omitempty"`
}

type distributeResponse struct {
	Positions []geom.Position `json:"positions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAlignCanvas(w http.ResponseWriter, r *http.Request) {
	var req alignCanvasRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	a, err := parseAlignment(req.Alignment)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, align.AlignToCanvas(req.Element, req.Canvas.WithCenter(), a))
}

func (s *Server) handleAlignElement(w http.ResponseWriter, r *http.Request) {
	var req alignElementRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	a, err := parseAlignment(req.Alignment)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, align.AlignToElement(req.Element, req.Target, a))
}

func (s *Server) handleDistribute(w http.ResponseWriter, r *http.Request) {
	var req distributeRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := parseDirection(req.Direction)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, distributeResponse{
		Positions: align.DistributeElements(req.Elements, d, req.Spacing),
	})
}

// =============================================================================
// Sessions
// =============================================================================

type createSessionRequest struct {
	SceneID  string          `json:"scene_id,omitempty"`
	Settings *align.Settings `json:"settings,omitempty"`
}

// snapRequest carries one drag event. Zoom defaults to 1. When the session is
// bound to a scene and no canvas is given, siblings and canvas come from the
// stored scene.
type snapRequest struct {
	Element geom.ElementBounds   `json:"element"`
	Others  []geom.ElementBounds `json:"others,omitempty"`
	Canvas  *geom.CanvasInfo     `json:"canvas,omitempty"`
	Zoom    *float64             `json:"zoom,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeOptional(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.SceneID != "" {
		if err := errors.ValidateID("scene", req.SceneID); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	sess, err := s.sessions.Create(r.Context(), req.SceneID, req.Settings)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleConfigureSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cur, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Decoding over the current settings leaves omitted fields unchanged.
	settings := cur.Settings()
	if err := decode(w, r, &settings); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := s.sessions.Configure(r.Context(), id, settings)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleSnap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req snapRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	zoom := 1.0
	if req.Zoom != nil {
		zoom = *req.Zoom
	}

	others, canvas := req.Others, geom.CanvasInfo{}
	if req.Canvas != nil {
		canvas = req.Canvas.WithCenter()
	} else {
		sc, err := s.sessionScene(r, id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		canvas = sc.Canvas
		if others == nil {
			others = sc.Siblings(req.Element.ID)
		}
	}

	res, err := s.sessions.Snap(r.Context(), id, req.Element, others, canvas, zoom)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// sessionScene loads the scene a session is bound to.
func (s *Server) sessionScene(r *http.Request, id string) (*scene.Scene, error) {
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if sess.SceneID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas is required for a session without a scene")
	}
	if s.scenes == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "no scene store configured")
	}
	return s.scenes.Get(r.Context(), sess.SceneID)
}

func (s *Server) handleForget(w http.ResponseWriter, r *http.Request) {
	err := s.sessions.Forget(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "elementID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Scenes
// =============================================================================

type distributeSceneRequest struct {
	ElementIDs []string `json:"element_ids"`
	Direction  string   `json:"direction"`
	Spacing    *float64 `json:"spacing,omitempty"`
}

func (s *Server) sceneStore() (scene.Store, error) {
	if s.scenes == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "no scene store configured")
	}
	return s.scenes, nil
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	store, err := s.sceneStore()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sc, err := store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handlePutScene(w http.ResponseWriter, r *http.Request) {
	store, err := s.sceneStore()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var sc scene.Scene
	if err := decode(w, r, &sc); err != nil {
		s.writeError(w, r, err)
		return
	}
	sc.ID = chi.URLParam(r, "id")
	if err := store.Put(r.Context(), &sc); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &sc)
}

func (s *Server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	store, err := s.sceneStore()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDistributeScene distributes the listed elements of a stored scene, or
// all of them when none are listed, saves the scene and returns the new
// positions.
func (s *Server) handleDistributeScene(w http.ResponseWriter, r *http.Request) {
	store, err := s.sceneStore()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req distributeSceneRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := parseDirection(req.Direction)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sc, err := store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	selected := sc.Elements
	if len(req.ElementIDs) > 0 {
		selected = make([]geom.ElementBounds, 0, len(req.ElementIDs))
		for _, id := range req.ElementIDs {
			el, ok := sc.Element(id)
			if !ok {
				s.writeError(w, r, errors.New(errors.ErrCodeElementNotFound, "element %q not in scene", id))
				return
			}
			selected = append(selected, el)
		}
	}

	positions := align.DistributeElements(selected, d, req.Spacing)
	if err := sc.ApplyPositions(positions); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := store.Put(r.Context(), sc); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, distributeResponse{Positions: positions})
}

func parseAlignment(s string) (align.Alignment, error) {
	a, err := align.ParseAlignment(s)
	if err != nil {
		return "", errors.New(errors.ErrCodeInvalidAlignment, "%v", err)
	}
	return a, nil
}

func parseDirection(s string) (align.Direction, error) {
	d, err := align.ParseDirection(s)
	if err != nil {
		return "", errors.New(errors.ErrCodeInvalidDirection, "%v", err)
	}
	return d, nil
}
