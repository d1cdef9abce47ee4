package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mantle3d/mantle/geo"
	"github.com/mantle3d/mantle/internal/meshd/store"
)

type meshParams struct {
	Level  int `validate:"gte=0,lte=31"`
	Row    int `validate:"gte=0"`
	Column int `validate:"gte=0"`
}

// Mesh handles GET /v1/mesh/:level/:row/:column. The optional skirted query
// parameter defaults to true.
func (h *Handler) Mesh(c *gin.Context) {
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		h.respondWithError(c, http.StatusBadRequest, "level should be integer")
		return
	}
	row, err := strconv.Atoi(c.Param("row"))
	if err != nil {
		h.respondWithError(c, http.StatusBadRequest, "row should be integer")
		return
	}
	column, err := strconv.Atoi(c.Param("column"))
	if err != nil {
		h.respondWithError(c, http.StatusBadRequest, "column should be integer")
		return
	}

	params := meshParams{Level: level, Row: row, Column: column}
	if err := h.validate.Struct(params); err != nil {
		h.respondWithError(c, http.StatusBadRequest, "tile address out of range")
		return
	}
	if level > h.maxLevel || !geo.NewTileKey(row, column, level).Valid() {
		h.respondWithError(c, http.StatusBadRequest, "no such tile")
		return
	}

	skirted := true
	if v := c.Query("skirted"); v != "" {
		skirted, err = strconv.ParseBool(v)
		if err != nil {
			h.respondWithError(c, http.StatusBadRequest, "skirted should be boolean")
			return
		}
	}

	key := store.MeshKey{Level: level, Row: row, Column: column, Skirted: skirted}
	payload, cached, err := h.meshUseCase.GetMesh(c.Request.Context(), key)
	if err != nil {
		h.logger.Errorw("mesh request failed", "key", key, "error", err)
		h.respondWithInternalServerError(c)
		return
	}
	if cached {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.Data(http.StatusOK, "application/octet-stream", payload)
}
