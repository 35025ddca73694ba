package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/zyedidia/generic/mapset"

	"escapemaze/pkg/engine/terminal"
	"escapemaze/pkg/engine/world"
	"escapemaze/pkg/game/entities"
	"escapemaze/pkg/game/i18n"
	"escapemaze/pkg/game/maze"
)

// Icon constants for coloured output
const (
	PlayerIcon   = "@"
	IconWall     = "▒"
	IconOpen     = " "
	IconExit     = "⌂"
	IconVisited  = "·"
	IconPath     = "○"
	IconRepaired = "×"
)

// Plain symbols for dumps and non-terminal output
const (
	SymbolVisited  = '.'
	SymbolPath     = '*'
	SymbolRepaired = 'r'
)

var (
	ColorWall        color.Style
	ColorOpen        color.Style
	ColorPlayer      color.Style
	ColorExit        color.Style
	ColorObstacle    color.Style
	ColorCollectible color.Style
	ColorVisited     color.Style
	ColorPath        color.Style
	ColorRepaired    color.Style
	ColorSubtle      color.Style
	ColorNotice      color.Style
)

func init() {
	InitColors()
}

// InitColors initializes the color styles
func InitColors() {
	ColorWall = color.Style{color.FgGray}
	ColorOpen = color.Style{color.FgDefault}
	ColorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	ColorExit = color.Style{color.FgGreen, color.OpBold}
	ColorObstacle = color.Style{color.FgRed, color.OpBold}
	ColorCollectible = color.Style{color.FgYellow}
	ColorVisited = color.Style{color.FgBlue}
	ColorPath = color.Style{color.FgMagenta, color.OpBold}
	ColorRepaired = color.Style{color.FgCyan, color.OpBold}
	ColorSubtle = color.Style{color.FgGray, color.OpBold}
	ColorNotice = color.Style{color.FgYellow, color.OpBold}
}

// Layers selects the diagnostic overlays drawn on top of the maze
type Layers struct {
	Visited  bool
	Path     bool
	Repaired bool
}

// Any reports whether at least one layer is enabled
func (l Layers) Any() bool {
	return l.Visited || l.Path || l.Repaired
}

// Options controls how a maze is drawn
type Options struct {
	// Color draws styled icons; otherwise plain ASCII symbols are written
	Color  bool
	Layers Layers
}

// DefaultOptions colours output only when stdout is a terminal
func DefaultOptions() Options {
	return Options{Color: terminal.StdoutIsTerminal()}
}

// overlay indexes everything drawn on top of the grid tiles
type overlay struct {
	obstacles    map[world.Position]entities.ObstacleType
	collectibles map[world.Position]entities.CollectibleType
	visited      mapset.Set[world.Position]
	path         mapset.Set[world.Position]
	repaired     mapset.Set[world.Position]
}

func newOverlay(m *maze.Maze, layers Layers) *overlay {
	o := &overlay{
		obstacles:    make(map[world.Position]entities.ObstacleType, len(m.Obstacles)),
		collectibles: make(map[world.Position]entities.CollectibleType, len(m.Collectibles)),
		visited:      mapset.New[world.Position](),
		path:         mapset.New[world.Position](),
		repaired:     mapset.New[world.Position](),
	}
	for _, ob := range m.Obstacles {
		if _, ok := o.obstacles[ob.Pos]; !ok {
			o.obstacles[ob.Pos] = ob.Type
		}
	}
	for _, c := range m.Collectibles {
		o.collectibles[c.Pos] = c.Type
	}

	// Layers need diagnostics; without them they draw nothing
	if m.Diagnostics == nil {
		return o
	}
	if layers.Visited {
		for _, p := range m.Diagnostics.Reachability.Visited {
			o.visited.Put(p)
		}
	}
	if layers.Path {
		for _, p := range m.Diagnostics.Path() {
			o.path.Put(p)
		}
	}
	if layers.Repaired {
		for _, p := range m.Removed() {
			o.repaired.Put(p)
		}
	}
	return o
}

// glyph returns the drawn representation of one cell. Precedence is
// start, exit, obstacle, collectible, repaired, path, visited, tile.
func (o *overlay) glyph(m *maze.Maze, p world.Position, useColor bool) string {
	switch {
	case p == m.Start:
		return pick(useColor, ColorPlayer, PlayerIcon, world.PlayerMarker.Symbol())
	case p == m.Exit:
		return pick(useColor, ColorExit, IconExit, world.ExitMarker.Symbol())
	}
	if t, ok := o.obstacles[p]; ok {
		info := entities.ObstacleTypes[t]
		return pick(useColor, ColorObstacle, info.Icon, info.Symbol)
	}
	if t, ok := o.collectibles[p]; ok {
		info := entities.CollectibleTypes[t]
		return pick(useColor, ColorCollectible, info.Icon, info.Symbol)
	}
	switch {
	case o.repaired.Has(p):
		return pick(useColor, ColorRepaired, IconRepaired, SymbolRepaired)
	case o.path.Has(p):
		return pick(useColor, ColorPath, IconPath, SymbolPath)
	case o.visited.Has(p):
		return pick(useColor, ColorVisited, IconVisited, SymbolVisited)
	}

	tile := m.Grid.Tile(p)
	if tile == world.Wall {
		return pick(useColor, ColorWall, IconWall, tile.Symbol())
	}
	return pick(useColor, ColorOpen, IconOpen, tile.Symbol())
}

func pick(useColor bool, style color.Style, icon string, symbol rune) string {
	if useColor {
		return style.Sprint(icon)
	}
	return string(symbol)
}

// RenderMaze writes the maze one row per line
func RenderMaze(w io.Writer, m *maze.Maze, opts Options) error {
	o := newOverlay(m, opts.Layers)
	var sb strings.Builder
	for y := 0; y < m.Size; y++ {
		sb.Reset()
		for x := 0; x < m.Size; x++ {
			sb.WriteString(o.glyph(m, world.Pos(x, y), opts.Color))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// legendEntry pairs a drawn glyph with its message key
type legendEntry struct {
	glyph string
	label string
}

func legendEntries(opts Options) []legendEntry {
	entries := []legendEntry{
		{pick(opts.Color, ColorWall, IconWall, world.Wall.Symbol()), i18n.Get(i18n.LegendWall)},
		{pick(opts.Color, ColorOpen, IconOpen, world.Open.Symbol()), i18n.Get(i18n.LegendOpen)},
		{pick(opts.Color, ColorPlayer, PlayerIcon, world.PlayerMarker.Symbol()), i18n.Get(i18n.LegendStart)},
		{pick(opts.Color, ColorExit, IconExit, world.ExitMarker.Symbol()), i18n.Get(i18n.LegendExit)},
	}
	for _, t := range entities.AllObstacleTypes() {
		info := entities.ObstacleTypes[t]
		entries = append(entries, legendEntry{
			pick(opts.Color, ColorObstacle, info.Icon, info.Symbol),
			fmt.Sprintf("%s (%s)", i18n.Get(i18n.LegendObstacle), info.Name),
		})
	}
	for _, t := range entities.AllCollectibleTypes() {
		info := entities.CollectibleTypes[t]
		entries = append(entries, legendEntry{
			pick(opts.Color, ColorCollectible, info.Icon, info.Symbol),
			fmt.Sprintf("%s (%s)", i18n.Get(i18n.LegendCollectible), info.Name),
		})
	}
	if opts.Layers.Visited {
		entries = append(entries, legendEntry{pick(opts.Color, ColorVisited, IconVisited, SymbolVisited), i18n.Get(i18n.LegendVisited)})
	}
	if opts.Layers.Path {
		entries = append(entries, legendEntry{pick(opts.Color, ColorPath, IconPath, SymbolPath), i18n.Get(i18n.LegendPath)})
	}
	if opts.Layers.Repaired {
		entries = append(entries, legendEntry{pick(opts.Color, ColorRepaired, IconRepaired, SymbolRepaired), i18n.Get(i18n.LegendRepaired)})
	}
	return entries
}

// RenderLegend writes the symbol legend for the given options on one line
func RenderLegend(w io.Writer, opts Options) error {
	parts := []string{}
	for _, e := range legendEntries(opts) {
		glyph := e.glyph
		if strings.TrimSpace(color.ClearCode(glyph)) == "" {
			glyph = "'" + glyph + "'"
		}
		parts = append(parts, glyph+" = "+e.label)
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", i18n.Get(i18n.Legend), strings.Join(parts, "  "))
	return err
}

// PrintMaze prints the header, the maze centred in the terminal, the legend
// and the repair notice, if any.
func PrintMaze(m *maze.Maze, opts Options) error {
	return WriteMaze(os.Stdout, m, opts, terminal.GetWidth())
}

// WriteMaze is PrintMaze for an arbitrary writer and width
func WriteMaze(w io.Writer, m *maze.Maze, opts Options, width int) error {
	header := i18n.Getf(i18n.MazeHeader, m.ID, m.Size, m.Size)
	if opts.Color {
		header = ColorSubtle.Sprint(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	indent := ""
	if pad := (width - m.Size) / 2; pad > 0 {
		indent = strings.Repeat(" ", pad)
	}
	var sb strings.Builder
	if err := RenderMaze(&sb, m, opts); err != nil {
		return err
	}
	for _, line := range strings.SplitAfter(sb.String(), "\n") {
		if line == "" {
			continue
		}
		if _, err := io.WriteString(w, indent+line); err != nil {
			return err
		}
	}

	if err := RenderLegend(w, opts); err != nil {
		return err
	}
	if m.Notice != "" {
		notice := m.Notice
		if opts.Color {
			notice = ColorNotice.Sprint(notice)
		}
		if _, err := fmt.Fprintln(w, notice); err != nil {
			return err
		}
	}
	return nil
}
