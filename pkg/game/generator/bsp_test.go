package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escapemaze/pkg/engine/world"
)

func TestBSPGenerate_Connected(t *testing.T) {
	for _, size := range []int{5, 7, 12, 25, 40} {
		for seed := uint64(1); seed <= 10; seed++ {
			t.Run(fmt.Sprintf("size=%d/seed=%d", size, seed), func(t *testing.T) {
				c := Rooms.Generate(size, newRand(seed))
				g := c.Grid

				require.Equal(t, size, g.Size())
				assert.Equal(t, world.Open, g.Tile(world.Pos(1, 1)))
				assert.Equal(t, 1, world.CountCorridors(g), "every room reachable from (1,1)")
				assert.Zero(t, c.Openings)
				assertPerimeterWalled(t, g)
			})
		}
	}
}

func TestBSPGenerate_SplitsLargeGrids(t *testing.T) {
	root := &bspNode{x: 1, y: 1, width: 38, height: 38}
	splitBSP(root, minNodeSize, newRand(3))
	createRooms(root, newRand(3))

	rooms := collectRooms(root)
	assert.Greater(t, len(rooms), 1)
	for _, r := range rooms {
		assert.GreaterOrEqual(t, r.width, minRoomSize)
		assert.GreaterOrEqual(t, r.height, minRoomSize)
	}
}

func TestBSPGenerate_SmallGridIsOneRoom(t *testing.T) {
	root := &bspNode{x: 1, y: 1, width: 3, height: 3}
	splitBSP(root, minNodeSize, newRand(1))
	createRooms(root, newRand(1))

	rooms := collectRooms(root)
	require.Len(t, rooms, 1)
	assert.Equal(t, bspRoom{x: 1, y: 1, width: 3, height: 3}, *rooms[0])
}

func TestBSPGenerate_Deterministic(t *testing.T) {
	a := Rooms.Generate(21, newRand(8)).Grid
	b := Rooms.Generate(21, newRand(8)).Grid
	assert.True(t, a.Equal(b))
}

func TestLookup(t *testing.T) {
	g, err := Lookup("bsp")
	require.NoError(t, err)
	assert.Equal(t, "BSP Rooms", g.Name())

	_, err = Lookup("cellular")
	assert.ErrorContains(t, err, "unknown generator")
	assert.Equal(t, []string{"backtracker", "bsp", "perfect"}, Names())
}
