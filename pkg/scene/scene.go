package scene

// CommandKind identifies the type of a draw command.
type CommandKind int

const (
	CmdFillPath CommandKind = iota
	CmdStrokePath
	CmdFillAndStrokePath
	CmdClipIntersect
	CmdPaintGlyph
)

var commandKindNames = [...]string{
	CmdFillPath:          "FillPath",
	CmdStrokePath:        "StrokePath",
	CmdFillAndStrokePath: "FillAndStrokePath",
	CmdClipIntersect:     "ClipIntersect",
	CmdPaintGlyph:        "PaintGlyph",
}

func (k CommandKind) String() string {
	if k >= 0 && int(k) < len(commandKindNames) {
		return commandKindNames[k]
	}
	return "Unknown"
}

// GlyphPlacement is the absolute placement of a single glyph. Transform maps
// the glyph's 1-unit em square (already scaled by font size, horizontal
// scaling and rise) into device space.
type GlyphPlacement struct {
	Code      uint32
	Rune      rune
	FontName  string
	FontSize  float64
	Transform Matrix
	Mode      int // PDF text rendering mode
}

// Command is one finalized, device-space draw command. Commands are
// self-contained: they carry their resolved paint and the clip region in
// effect at emission time, and are immutable once emitted.
type Command struct {
	Kind   CommandKind
	Path   Path
	Rule   FillRule
	Fill   Paint
	Stroke Paint
	Style  StrokeStyle
	Glyph  *GlyphPlacement
	Clip   *ClipRegion
}

// Sink receives finalized draw commands in emission order.
type Sink interface {
	Draw(cmd Command)
}

// Scene is a recording Sink: the ordered draw commands of one interpreted
// page, plus the page dimensions in device units.
type Scene struct {
	Width    float64
	Height   float64
	Commands []Command
}

// NewScene creates an empty scene with the given page dimensions.
func NewScene(width, height float64) *Scene {
	return &Scene{Width: width, Height: height}
}

// Draw appends a command to the scene.
func (s *Scene) Draw(cmd Command) {
	s.Commands = append(s.Commands, cmd)
}
