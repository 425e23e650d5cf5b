package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"clipcast/player"
	"clipcast/project"
	"clipcast/stagestate"
)

type errorResponse struct {
	Error string `json:"error"`
}

type projectSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Clips int    `json:"clips"`
}

type projectDetail struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Clips     []project.Clip `json:"clips"`
	Durations []float64      `json:"durations,omitempty"`
}

type loadRequest struct {
	Project string `json:"project"`
	Mode    string `json:"mode"`
}

type seekRequest struct {
	T float64 `json:"t"`
}

type clipRequest struct {
	Index int `json:"index"`
}

type advanceRequest struct {
	Dt float64 `json:"dt"`
}

type playRequest struct {
	Playing bool `json:"playing"`
}

// stateResponse is what every playback mutation returns: where the
// cursor now sits and the render state to apply.
type stateResponse struct {
	ClipIndex int              `json:"clipIndex"`
	Elapsed   float64          `json:"elapsed"`
	Duration  float64          `json:"duration"`
	Playing   bool             `json:"playing"`
	Done      bool             `json:"done"`
	State     stagestate.State `json:"state"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := webFS.ReadFile("web/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "player page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	ids := s.registry.IDs()
	out := make([]projectSummary, 0, len(ids))
	for _, id := range ids {
		proj, _ := s.registry.Get(id)
		out = append(out, projectSummary{ID: id, Name: proj.Name, Clips: len(proj.Clips)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": out})
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	proj, ok := s.registry.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown project "+id)
		return
	}
	detail := projectDetail{ID: id, Name: proj.Name, Clips: proj.Clips}
	if sess, ok := s.activeSession(); ok && sess.ID == id {
		detail.Durations = sess.Durations
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	mode := player.ModeInteractive
	if req.Mode == "render" {
		mode = player.ModeRender
	}
	sess, err := s.Load(req.Project, mode)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondState(w, sess, sess.Driver.Snapshot())
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.activeSession()
	if !ok {
		writeError(w, http.StatusConflict, "no project loaded")
		return
	}
	var req seekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	s.respondState(w, sess, sess.Driver.Seek(req.T))
}

func (s *Server) handleClip(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.activeSession()
	if !ok {
		writeError(w, http.StatusConflict, "no project loaded")
		return
	}
	var req clipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	s.respondState(w, sess, sess.Driver.SetClipIndex(req.Index))
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.activeSession()
	if !ok {
		writeError(w, http.StatusConflict, "no project loaded")
		return
	}
	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	s.respondState(w, sess, sess.Driver.Advance(req.Dt))
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.activeSession()
	if !ok {
		writeError(w, http.StatusConflict, "no project loaded")
		return
	}
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	s.respondState(w, sess, sess.Driver.SetPlaying(req.Playing))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.activeSession()
	if !ok {
		writeError(w, http.StatusConflict, "no project loaded")
		return
	}
	s.respondState(w, sess, sess.Driver.Snapshot())
}

func (s *Server) respondState(w http.ResponseWriter, sess *Session, pos player.Position) {
	writeJSON(w, http.StatusOK, stateResponse{
		ClipIndex: pos.ClipIndex,
		Elapsed:   pos.Elapsed,
		Duration:  pos.Duration,
		Playing:   pos.Playing,
		Done:      pos.Done,
		State:     sess.State(pos),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
