package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/worldgen/internal/chunk"
	"github.com/VoidMesh/worldgen/internal/codec"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/tile"
)

type Handler struct {
	chunkManager *chunk.Manager
	logger       *log.Logger
}

func NewHandler(chunkManager *chunk.Manager) *Handler {
	return &Handler{
		chunkManager: chunkManager,
		logger:       logging.WithComponent("api"),
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "worldgen",
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) GetWorld(w http.ResponseWriter, r *http.Request) {
	world := h.chunkManager.Cache().World()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, WorldResponse{
		ID:         world.ID,
		OriginTime: world.OriginTime,
		Seed:       world.Seed,
	})
}

func (h *Handler) ListChunks(w http.ResponseWriter, r *http.Request) {
	coords := h.chunkManager.Cache().Coords()
	slots := h.chunkManager.Slots()

	response := ChunkListResponse{
		Chunks:  make([]CoordResponse, 0, len(coords)),
		Count:   len(coords),
		Pending: h.chunkManager.Pending(),
		Slots: SlotResponse{
			Capacity: slots.Capacity(),
			Leased:   slots.Leased(),
		},
	}
	for _, c := range coords {
		response.Chunks = append(response.Chunks, CoordResponse{X: c.X, Y: c.Y})
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) GetChunk(w http.ResponseWriter, r *http.Request) {
	coord, ok := h.chunkCoord(w, r)
	if !ok {
		return
	}

	entry, ok := h.chunkManager.Cache().Peek(coord)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, "chunk not loaded", nil)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, newChunkResponse(entry))
}

func (h *Handler) RenderChunk(w http.ResponseWriter, r *http.Request) {
	coord, ok := h.chunkCoord(w, r)
	if !ok {
		return
	}

	entry, ok := h.chunkManager.Cache().Peek(coord)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, "chunk not loaded", nil)
		return
	}

	render.Status(r, http.StatusOK)
	render.PlainText(w, r, entry.Chunk.Render())
}

func (h *Handler) LoadChunk(w http.ResponseWriter, r *http.Request) {
	coord, ok := h.chunkCoord(w, r)
	if !ok {
		return
	}

	h.chunkManager.RequestLoad(coord)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, RequestResponse{Status: "queued", Kind: chunk.LoadRequest.String(), X: coord.X, Y: coord.Y})
}

func (h *Handler) UnloadChunk(w http.ResponseWriter, r *http.Request) {
	coord, ok := h.chunkCoord(w, r)
	if !ok {
		return
	}

	h.chunkManager.RequestUnload(coord)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, RequestResponse{Status: "queued", Kind: chunk.UnloadRequest.String(), X: coord.X, Y: coord.Y})
}

func (h *Handler) GetTile(w http.ResponseWriter, r *http.Request) {
	x, err := parseCoord(chi.URLParam(r, "x"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid tile x coordinate", err)
		return
	}
	y, err := parseCoord(chi.URLParam(r, "y"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid tile y coordinate", err)
		return
	}

	pos := tile.WorldPos{X: x, Y: y}
	t, ok := h.chunkManager.TileAt(pos)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, "chunk not loaded", nil)
		return
	}

	coord, _ := tile.ChunkOf(pos)
	response := TileResponse{
		X:     x,
		Y:     y,
		Kind:  t.Kind().String(),
		ID:    codec.ID(t.Kind()),
		Chunk: CoordResponse{X: coord.X, Y: coord.Y},
	}
	if mag, ok := t.Magnitude(); ok {
		response.Magnitude = &mag
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) chunkCoord(w http.ResponseWriter, r *http.Request) (tile.ChunkCoord, bool) {
	x, err := parseCoord(chi.URLParam(r, "x"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk x coordinate", err)
		return tile.ChunkCoord{}, false
	}
	y, err := parseCoord(chi.URLParam(r, "y"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk y coordinate", err)
		return tile.ChunkCoord{}, false
	}
	coord := tile.ChunkCoord{X: x, Y: y}
	if !coord.InBounds() {
		h.renderError(w, r, http.StatusBadRequest, "chunk coordinate out of range", tile.ErrOutOfBounds)
		return tile.ChunkCoord{}, false
	}
	return coord, true
}

func parseCoord(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		h.logger.Error("API error", "error", err, "message", message, "status", status)
		// Don't expose internal errors to the client
		if status >= 500 {
			errorResponse.Error = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
