// Package usecase holds the mesh retrieval flow: cache lookup, generation
// on miss, store on the way out.
package usecase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/mantle3d/mantle/geo"
	"github.com/mantle3d/mantle/internal/meshd/metrics"
	"github.com/mantle3d/mantle/internal/meshd/store"
	"github.com/mantle3d/mantle/meshcodec"
	"github.com/mantle3d/mantle/terrain"
)

type MeshUseCase struct {
	store  store.MeshStore
	gen    *terrain.PatchGenerator
	logger *zap.SugaredLogger
	tracer trace.Tracer
}

func NewMeshUseCase(s store.MeshStore, gen *terrain.PatchGenerator, logger *zap.SugaredLogger) *MeshUseCase {
	return &MeshUseCase{
		store:  s,
		gen:    gen,
		logger: logger,
		tracer: otel.Tracer("meshd/usecase"),
	}
}

// GetMesh returns the encoded mesh for a tile, generating and caching it on
// a miss. The second return reports whether the payload came from the cache.
func (uc *MeshUseCase) GetMesh(ctx context.Context, key store.MeshKey) ([]byte, bool, error) {
	ctx, span := uc.tracer.Start(ctx, "GetMesh", trace.WithAttributes(
		attribute.Int("tile.level", key.Level),
		attribute.Int("tile.row", key.Row),
		attribute.Int("tile.column", key.Column),
		attribute.Bool("tile.skirted", key.Skirted),
	))
	defer span.End()

	payload, cached, err := uc.store.Get(ctx, key)
	if err != nil {
		uc.logger.Errorw("mesh cache lookup failed", "key", key, "error", err)
		return nil, false, err
	}
	if cached {
		metrics.MeshCacheHits.Inc()
		return payload, true, nil
	}
	metrics.MeshCacheMisses.Inc()

	payload, err = uc.generate(ctx, key)
	if err != nil {
		return nil, false, err
	}

	if err := uc.store.Set(ctx, key, payload); err != nil {
		// a failed store is not fatal, the payload is already in hand
		uc.logger.Warnw("mesh cache store failed", "key", key, "error", err)
	} else {
		metrics.MeshCacheStores.Inc()
	}
	return payload, false, nil
}

func (uc *MeshUseCase) generate(ctx context.Context, key store.MeshKey) ([]byte, error) {
	_, span := uc.tracer.Start(ctx, "GenerateMesh")
	defer span.End()

	start := time.Now()
	mode, err := uc.gen.Generate(geo.NewTileKey(key.Row, key.Column, key.Level), key.Skirted)
	if err != nil {
		return nil, fmt.Errorf("generate mesh: %w", err)
	}
	payload := meshcodec.Encode(mode)
	metrics.MeshGenerationDuration.Observe(time.Since(start).Seconds())

	uc.logger.Debugw("mesh generated",
		"key", key, "vertices", mode.VertexCount(), "bytes", len(payload))
	return payload, nil
}
