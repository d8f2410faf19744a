package server

import (
	"encoding/json"
	"net/http"

	errs "github.com/shannonchou/SquareFlowLayout/pkg/errors"
	"github.com/shannonchou/SquareFlowLayout/pkg/render/sink"
)

type sizeResponse struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Items    int     `json:"items"`
	Revision string  `json:"revision"`
}

type visibleResponse struct {
	Rect     sink.JSONRect   `json:"rect"`
	Revision string          `json:"revision"`
	Items    []sink.JSONItem `json:"items"`
}

type expandedRequest struct {
	Expanded *bool `json:"expanded"`
}

type widthRequest struct {
	Width *float64 `json:"width"`
}

type itemResponse struct {
	sink.JSONItem
	Revision string `json:"revision"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := sink.NewDocument(s.grid.flow.Snapshot(), nil)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleSize(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	width, height := s.grid.flow.ContentSize()
	resp := sizeResponse{Width: width, Height: height, Items: s.grid.doc.Items, Revision: s.grid.revision}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVisible(w http.ResponseWriter, r *http.Request) {
	rect, err := parseRect(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ctx := r.Context()

	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.grid.keys.QueryKey(rect.X, rect.Y, rect.W, rect.H)
	if data, ok := s.caches.GetQuery(ctx, key); ok {
		writeRaw(w, http.StatusOK, "application/json", data)
		return
	}

	visible := s.grid.flow.VisibleGeometries(rect)
	snap := s.grid.flow.Snapshot()
	resp := visibleResponse{
		Rect:     sink.JSONRect{X: rect.X, Y: rect.Y, Width: rect.W, Height: rect.H},
		Revision: s.grid.revision,
		Items:    make([]sink.JSONItem, 0, len(visible)),
	}
	for _, g := range visible {
		resp.Items = append(resp.Items, sink.ItemJSON(snap, g))
	}
	data, err := json.Marshal(resp)
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "encode visible items"))
		return
	}
	s.caches.SetQuery(ctx, key, data)
	writeRaw(w, http.StatusOK, "application/json", data)
}

// itemLocked returns the geometry of position. The bounds check happens here
// so that an out-of-range request is a 404, not a panic in the Flow.
func (s *Server) itemLocked(position int) (itemResponse, error) {
	if err := errs.ValidatePosition(position, s.grid.doc.Items); err != nil {
		return itemResponse{}, err
	}
	g := s.grid.flow.GeometryForItem(position)
	return itemResponse{
		JSONItem: sink.ItemJSON(s.grid.flow.Snapshot(), g),
		Revision: s.grid.revision,
	}, nil
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	position, err := parsePosition(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.mu.Lock()
	resp, err := s.itemLocked(position)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetExpanded(w http.ResponseWriter, r *http.Request) {
	position, err := parsePosition(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req expandedRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Expanded == nil {
		s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "missing field \"expanded\""))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := errs.ValidatePosition(position, s.grid.doc.Items); err != nil {
		s.writeError(w, err)
		return
	}
	if s.grid.setExpanded(position, *req.Expanded) {
		s.logger.Info("expansion changed", "position", position, "expanded", *req.Expanded, "revision", s.grid.revision)
	}
	resp, err := s.itemLocked(position)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetWidth(w http.ResponseWriter, r *http.Request) {
	var req widthRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Width == nil {
		s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "missing field \"width\""))
		return
	}
	width := *req.Width

	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.grid.doc
	if err := errs.ValidateInsets(width, doc.Insets.Top, doc.Insets.Left, doc.Insets.Bottom, doc.Insets.Right); err != nil {
		s.writeError(w, err)
		return
	}
	available := width - doc.Insets.Left - doc.Insets.Right
	if err := errs.ValidateDimensions(doc.Items, available, doc.Spacing); err != nil {
		s.writeError(w, err)
		return
	}
	if s.grid.setWidth(width) {
		s.logger.Info("width changed", "width", width, "revision", s.grid.revision)
	}
	cw, ch := s.grid.flow.ContentSize()
	writeJSON(w, http.StatusOK, sizeResponse{Width: cw, Height: ch, Items: doc.Items, Revision: s.grid.revision})
}

func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	rect, err := parseRect(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if rect.IsEmpty() {
		s.writeError(w, errs.New(errs.ErrCodeInvalidRect, "tile rect must have positive size"))
		return
	}
	scale := s.tileScale
	if r.URL.Query().Has("scale") {
		if scale, err = parseFloatParam(r, "scale"); err != nil {
			s.writeError(w, err)
			return
		}
		if scale <= 0 {
			s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "scale must be positive, got %v", scale))
			return
		}
	}
	ctx := r.Context()

	s.mu.Lock()
	key := s.grid.keys.TileKey(rect.X, rect.Y, rect.W, rect.H, scale)
	if data, ok := s.caches.GetTile(ctx, key); ok {
		s.mu.Unlock()
		writeRaw(w, http.StatusOK, "image/png", data)
		return
	}
	snap := s.grid.flow.Snapshot()
	s.mu.Unlock()

	// snap is immutable once built, so rendering runs outside the lock.
	data, err := sink.RenderPNG(snap, sink.WithPNGScale(scale), sink.WithPNGViewport(rect))
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidRect, err, "render tile"))
		return
	}
	if err := s.caches.SetTile(ctx, key, data); err != nil {
		s.logger.Warn("tile not cached", "key", key, "err", err)
	}
	writeRaw(w, http.StatusOK, "image/png", data)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.caches.Stats()
	s.mu.Lock()
	stats["items"] = s.grid.doc.Items
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}
