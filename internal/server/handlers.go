package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/deskgrid/pkg/buildinfo"
	"github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/grid"
	"github.com/matzehuels/deskgrid/pkg/layout"
	"github.com/matzehuels/deskgrid/pkg/store"
	"github.com/matzehuels/deskgrid/pkg/widget"
)

type errorResponse struct {
	Error   errors.Code `json:"error"`
	Message string      `json:"message"`
}

type addRequest struct {
	WidgetType string `json:"widgetType"`
	ID         string `json:"id,omitempty"`
	X          *int   `json:"x,omitempty"`
	Y          *int   `json:"y,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Locked     bool   `json:"locked,omitempty"`
	Settings   any    `json:"settings,omitempty"`
}

type positionRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type sizeRequest struct {
	Width  *int `json:"width"`
	Height *int `json:"height"`
	X      *int `json:"x,omitempty"`
	Y      *int `json:"y,omitempty"`
}

type lockRequest struct {
	Locked *bool `json:"locked"`
}

type constraintsResponse struct {
	WidgetType  string             `json:"widgetType"`
	Constraints widget.Constraints `json:"constraints"`
	DefaultSize grid.Size          `json:"defaultSize"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorResponse{Error: code, Message: errors.UserMessage(err)})
}

// statusFor maps error codes to HTTP statuses: unknown ids are 404, other
// layout rejections 409 and malformed input 400.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeWidgetNotFound, errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeCollision, errors.ErrCodeOutOfBounds, errors.ErrCodeWidgetLocked,
		errors.ErrCodeDuplicateID, errors.ErrCodeNoFreeSlot:
		return http.StatusConflict
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidOperation, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed request body")
	}
	return nil
}

// apply commits op and answers with the affected widget, or 204 when it
// no longer exists.
func (s *Server) apply(w http.ResponseWriter, op layout.Operation, id string) {
	var (
		err    error
		result layout.Widget
		found  bool
	)
	saveErr := s.withStore(func(st *store.Store) {
		if err = st.Apply(op); err == nil {
			result, found = st.Widget(id)
		}
	})
	if err != nil {
		writeError(w, err)
		return
	}
	s.reportSave(saveErr)
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) reportSave(err error) {
	if err != nil {
		s.logger.Warn("change applied but not saved", "err", err)
	}
}

func getVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	var snap store.Snapshot
	s.withStore(func(st *store.Store) { snap = st.Snapshot() })
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) postOperation(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read body"))
		return
	}
	op, err := layout.DecodeOperation(data)
	if err != nil {
		writeError(w, err)
		return
	}

	var snap store.Snapshot
	saveErr := s.withStore(func(st *store.Store) {
		if err = st.Apply(op); err == nil {
			snap = st.Snapshot()
		}
	})
	if err != nil {
		writeError(w, err)
		return
	}
	s.reportSave(saveErr)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) postWidget(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	var (
		err    error
		result layout.Widget
	)
	saveErr := s.withStore(func(st *store.Store) {
		var id string
		id, err = st.Add(req.WidgetType, &store.Placement{
			ID:       req.ID,
			X:        req.X,
			Y:        req.Y,
			Width:    req.Width,
			Height:   req.Height,
			Locked:   req.Locked,
			Settings: req.Settings,
		})
		if err == nil {
			result, _ = st.Widget(id)
		}
	})
	if err != nil {
		writeError(w, err)
		return
	}
	s.reportSave(saveErr)
	w.Header().Set("Location", "/api/widgets/"+result.ID)
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) getWidget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var (
		result layout.Widget
		ok     bool
	)
	s.withStore(func(st *store.Store) { result, ok = st.Widget(id) })
	if !ok {
		writeError(w, errors.New(errors.ErrCodeWidgetNotFound, "widget %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) deleteWidget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.apply(w, layout.RemoveWidget{ID: id}, id)
}

func (s *Server) putPosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req positionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.apply(w, layout.MoveWidget{ID: id, X: req.X, Y: req.Y}, id)
}

func (s *Server) putSize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req sizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Width == nil || req.Height == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "width and height are required"))
		return
	}
	s.apply(w, layout.ResizeWidget{ID: id, Width: *req.Width, Height: *req.Height, X: req.X, Y: req.Y}, id)
}

func (s *Server) putLock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req lockRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Locked == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "locked is required"))
		return
	}
	s.apply(w, layout.SetWidgetLock{ID: id, Locked: *req.Locked}, id)
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var settings any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&settings); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed request body"))
		return
	}
	s.apply(w, layout.SetWidgetSettings{ID: id, Settings: settings}, id)
}

func (s *Server) getOccupied(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var rect grid.Rect
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"x", &rect.X}, {"y", &rect.Y}, {"width", &rect.Width}, {"height", &rect.Height},
	} {
		v, err := strconv.Atoi(q.Get(f.name))
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "query parameter %s must be an integer", f.name))
			return
		}
		*f.dst = v
	}

	var (
		occupied bool
		inside   bool
	)
	s.withStore(func(st *store.Store) {
		if inside = grid.WithinBounds(st.Grid(), rect); inside {
			occupied = st.IsPositionOccupied(rect, q.Get("exclude"))
		}
	})
	if !inside {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "rect %v is outside the grid", rect))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"occupied": occupied})
}

func (s *Server) getConstraints(w http.ResponseWriter, r *http.Request) {
	widgetType := chi.URLParam(r, "type")
	var (
		c    widget.Constraints
		ok   bool
		size grid.Size
	)
	s.withStore(func(st *store.Store) {
		c, ok = st.Constraints(widgetType)
		size = st.Registry().DefaultSize(widgetType)
	})
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no constraints for widget type %s", widgetType))
		return
	}
	writeJSON(w, http.StatusOK, constraintsResponse{WidgetType: widgetType, Constraints: c, DefaultSize: size})
}

func (s *Server) listConstraints(w http.ResponseWriter, r *http.Request) {
	var out []constraintsResponse
	s.withStore(func(st *store.Store) {
		reg := st.Registry()
		for _, t := range reg.Types() {
			c, ok := reg.Constraints(t)
			if !ok {
				continue
			}
			out = append(out, constraintsResponse{WidgetType: t, Constraints: c, DefaultSize: reg.DefaultSize(t)})
		}
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) postDebugGrid(w http.ResponseWriter, r *http.Request) {
	var on bool
	saveErr := s.withStore(func(st *store.Store) { on = st.ToggleDebugGrid() })
	s.reportSave(saveErr)
	writeJSON(w, http.StatusOK, map[string]bool{"debugGrid": on})
}
