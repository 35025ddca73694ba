package generator

import (
	"math/rand/v2"

	"escapemaze/pkg/engine/world"
)

// BSPGenerator carves rectangular rooms with Binary Space Partitioning and
// joins sibling rooms with L-shaped corridors. The result is a floor plan
// rather than a maze: rooms are wide open and every room is connected.
type BSPGenerator struct{}

// Name returns the name of this generator
func (g *BSPGenerator) Name() string {
	return "BSP Rooms"
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *bspRoom
}

// bspRoom represents a room within a BSP leaf node
type bspRoom struct {
	x, y, width, height int
}

func (r *bspRoom) center() world.Position {
	return world.Pos(r.x+r.width/2, r.y+r.height/2)
}

// Constants for BSP generation
const (
	minNodeSize = 6 // Minimum size of a BSP node
	minRoomSize = 3 // Minimum size of a room
	roomPadding = 1 // Padding between room and node edge
)

// Generate creates a new grid using BSP algorithm
func (g *BSPGenerator) Generate(size int, r *rand.Rand) Carving {
	grid := world.NewGrid(size)
	if size < 3 {
		return Carving{Grid: grid}
	}

	// Leave the perimeter walled
	root := &bspNode{
		x:      1,
		y:      1,
		width:  size - 2,
		height: size - 2,
	}

	splitBSP(root, minNodeSize, r)
	createRooms(root, r)
	carveRooms(grid, root)
	connectRooms(grid, root, r)

	// The start cell is fixed at (1,1); tie it to the first room
	start := world.Pos(1, 1)
	grid.SetTile(start, world.Open)
	if rooms := collectRooms(root); len(rooms) > 0 {
		carveL(grid, start, rooms[0].center(), r.IntN(2) == 0)
	}

	return Carving{Grid: grid}
}

// splitBSP recursively splits a BSP node
func splitBSP(node *bspNode, minSize int, r *rand.Rand) {
	canWide := node.width >= minSize*2
	canTall := node.height >= minSize*2

	// Decide split direction
	var splitHorizontal bool
	switch {
	case !canWide && !canTall:
		return // Too small to split
	case node.width > node.height && canWide:
		splitHorizontal = false
	case node.height > node.width && canTall:
		splitHorizontal = true
	case canWide && canTall:
		splitHorizontal = r.IntN(2) == 0
	default:
		splitHorizontal = canTall
	}

	if splitHorizontal {
		// Split horizontally (top and bottom)
		splitPoint := minSize + r.IntN(node.height-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPoint}
		node.right = &bspNode{x: node.x, y: node.y + splitPoint, width: node.width, height: node.height - splitPoint}
	} else {
		// Split vertically (left and right)
		splitPoint := minSize + r.IntN(node.width-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: splitPoint, height: node.height}
		node.right = &bspNode{x: node.x + splitPoint, y: node.y, width: node.width - splitPoint, height: node.height}
	}

	splitBSP(node.left, minSize, r)
	splitBSP(node.right, minSize, r)
}

// roomSpan picks a room extent that fits a node extent with padding
func roomSpan(span int, r *rand.Rand) int {
	if span < minRoomSize+roomPadding {
		return span
	}
	return minRoomSize + r.IntN(span-minRoomSize-roomPadding+1)
}

// createRooms creates rooms in leaf nodes
func createRooms(node *bspNode, r *rand.Rand) {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			createRooms(node.left, r)
		}
		if node.right != nil {
			createRooms(node.right, r)
		}
		return
	}

	width := roomSpan(node.width, r)
	height := roomSpan(node.height, r)
	node.room = &bspRoom{
		x:      node.x + r.IntN(node.width-width+1),
		y:      node.y + r.IntN(node.height-height+1),
		width:  width,
		height: height,
	}
}

// carveRooms opens every room cell
func carveRooms(grid *world.Grid, node *bspNode) {
	if node.room != nil {
		for y := node.room.y; y < node.room.y+node.room.height; y++ {
			for x := node.room.x; x < node.room.x+node.room.width; x++ {
				grid.SetTile(world.Pos(x, y), world.Open)
			}
		}
	}

	if node.left != nil {
		carveRooms(grid, node.left)
	}
	if node.right != nil {
		carveRooms(grid, node.right)
	}
}

// connectRooms joins a room from each subtree, then recurses
func connectRooms(grid *world.Grid, node *bspNode, r *rand.Rand) {
	if node.left == nil || node.right == nil {
		return
	}

	leftRoom := getRoom(node.left, r)
	rightRoom := getRoom(node.right, r)
	if leftRoom != nil && rightRoom != nil {
		carveL(grid, leftRoom.center(), rightRoom.center(), r.IntN(2) == 0)
	}

	connectRooms(grid, node.left, r)
	connectRooms(grid, node.right, r)
}

// carveL opens an L-shaped corridor from a to b
func carveL(grid *world.Grid, a, b world.Position, horizontalFirst bool) {
	if horizontalFirst {
		carveCorridorHorizontal(grid, a.Y, a.X, b.X)
		carveCorridorVertical(grid, b.X, a.Y, b.Y)
		return
	}
	carveCorridorVertical(grid, a.X, a.Y, b.Y)
	carveCorridorHorizontal(grid, b.Y, a.X, b.X)
}

func carveCorridorHorizontal(grid *world.Grid, y, startX, endX int) {
	if startX > endX {
		startX, endX = endX, startX
	}
	for x := startX; x <= endX; x++ {
		grid.SetTile(world.Pos(x, y), world.Open)
	}
}

func carveCorridorVertical(grid *world.Grid, x, startY, endY int) {
	if startY > endY {
		startY, endY = endY, startY
	}
	for y := startY; y <= endY; y++ {
		grid.SetTile(world.Pos(x, y), world.Open)
	}
}

// getRoom returns a room from a subtree (picks randomly from leaves)
func getRoom(node *bspNode, r *rand.Rand) *bspRoom {
	if node.room != nil {
		return node.room
	}

	var leftRoom, rightRoom *bspRoom
	if node.left != nil {
		leftRoom = getRoom(node.left, r)
	}
	if node.right != nil {
		rightRoom = getRoom(node.right, r)
	}

	if leftRoom != nil && rightRoom != nil {
		if r.IntN(2) == 0 {
			return leftRoom
		}
		return rightRoom
	}
	if leftRoom != nil {
		return leftRoom
	}
	return rightRoom
}

// collectRooms collects all rooms from the BSP tree, left subtree first
func collectRooms(node *bspNode) []*bspRoom {
	var rooms []*bspRoom
	if node.room != nil {
		rooms = append(rooms, node.room)
	}
	if node.left != nil {
		rooms = append(rooms, collectRooms(node.left)...)
	}
	if node.right != nil {
		rooms = append(rooms, collectRooms(node.right)...)
	}
	return rooms
}
