package mantle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mantle3d/mantle/geo"
)

func newTestView(t *testing.T) *MapView {
	t.Helper()
	view, err := NewMapViewBuilder().
		UseModule(TerrainModule{Subdivision: 3}).
		UseModule(TilerModule{Workers: 2}).
		Build()
	require.NoError(t, err)
	t.Cleanup(view.Close)
	return view
}

func TestTileUpdaterDeliversVisibleGeometry(t *testing.T) {
	view := newTestView(t)
	tiles := view.Tiles()

	box := geo.GeoBox{South: -1, West: -1, North: 1, East: 1}
	tiles.SetViewBox(box, 3)
	visible := tiles.Visible()
	require.NotEmpty(t, visible)

	deadline := time.Now().Add(5 * time.Second)
	for {
		view.Update(16 * time.Millisecond)
		done := true
		for _, key := range visible {
			if _, ok := tiles.Geometry(key); !ok {
				done = false
			}
		}
		if done {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("visible tiles not generated within deadline")
		}
		time.Sleep(time.Millisecond)
	}

	for _, key := range visible {
		mode, ok := tiles.Geometry(key)
		require.True(t, ok)
		require.NotZero(t, mode.VertexCount())
	}
}

func TestTileUpdaterEvictsHiddenTiles(t *testing.T) {
	view := newTestView(t)
	tiles := view.Tiles()

	box := geo.GeoBox{South: -1, West: -1, North: 1, East: 1}
	tiles.SetViewBox(box, 3)
	oldVisible := tiles.Visible()

	deadline := time.Now().Add(5 * time.Second)
	for {
		view.Update(16 * time.Millisecond)
		if _, ok := tiles.Geometry(oldVisible[0]); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("tile not generated within deadline")
		}
		time.Sleep(time.Millisecond)
	}

	elsewhere := geo.GeoBox{South: 40, West: 100, North: 42, East: 102}
	tiles.SetViewBox(elsewhere, 6)
	if _, ok := tiles.Geometry(oldVisible[0]); ok {
		t.Error("hidden tile still has geometry")
	}
}

func TestTileUpdaterTransformationFollowsMorph(t *testing.T) {
	view := newTestView(t)
	tiles := view.Tiles()
	key := geo.NewTileKey(2, 3, 3)

	view.Morph().Set(0)
	globePos, globeRot := tiles.Transformation(key)
	require.NotNil(t, globeRot)

	view.Morph().Set(1)
	flatPos, flatRot := tiles.Transformation(key)
	require.Nil(t, flatRot)
	require.NotEqual(t, globePos, flatPos)
}
