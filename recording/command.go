package recording

// CommandType identifies the kind of a recorded command.
type CommandType uint8

const (
	CmdSave CommandType = iota
	CmdRestore
	CmdSetTransform
	CmdSetClip
	CmdClearClip
	CmdClear
	CmdFillPath
	CmdStrokePath
	CmdFillRect
	CmdDrawImage
	CmdDrawText
)

var commandTypeNames = [...]string{
	CmdSave:         "Save",
	CmdRestore:      "Restore",
	CmdSetTransform: "SetTransform",
	CmdSetClip:      "SetClip",
	CmdClearClip:    "ClearClip",
	CmdClear:        "Clear",
	CmdFillPath:     "FillPath",
	CmdStrokePath:   "StrokePath",
	CmdFillRect:     "FillRect",
	CmdDrawImage:    "DrawImage",
	CmdDrawText:     "DrawText",
}

// String returns the command type name.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by all recorded drawing operations.
type Command interface {
	Type() CommandType
}

// PathRef references a path in the resource pool.
type PathRef uint32

// BrushRef references a brush in the resource pool.
type BrushRef uint32

// ImageRef references an image in the resource pool.
type ImageRef uint32

// SaveCommand pushes the current graphics state (transform and clip).
type SaveCommand struct{}

func (SaveCommand) Type() CommandType { return CmdSave }

// RestoreCommand pops the most recently saved graphics state.
type RestoreCommand struct{}

func (RestoreCommand) Type() CommandType { return CmdRestore }

// SetTransformCommand replaces the current transformation matrix.
type SetTransformCommand struct {
	Matrix Matrix
}

func (SetTransformCommand) Type() CommandType { return CmdSetTransform }

// SetClipCommand replaces the clip region with a path.
type SetClipCommand struct {
	Path PathRef
	Rule FillRule
}

func (SetClipCommand) Type() CommandType { return CmdSetClip }

// ClearClipCommand resets the clip region to the full canvas.
type ClearClipCommand struct{}

func (ClearClipCommand) Type() CommandType { return CmdClearClip }

// ClearCommand fills the whole canvas with a background color,
// ignoring transform and clip.
type ClearCommand struct {
	Color Color
}

func (ClearCommand) Type() CommandType { return CmdClear }

// FillPathCommand fills a path with a brush.
// Drawing commands carry their complete style so that replay never
// depends on backend-side style state.
type FillPathCommand struct {
	Path  PathRef
	Brush BrushRef
	Rule  FillRule
}

func (FillPathCommand) Type() CommandType { return CmdFillPath }

// StrokePathCommand strokes a path with a brush and stroke style.
type StrokePathCommand struct {
	Path   PathRef
	Brush  BrushRef
	Stroke Stroke
}

func (StrokePathCommand) Type() CommandType { return CmdStrokePath }

// FillRectCommand fills an axis-aligned rectangle.
type FillRectCommand struct {
	Rect  Rect
	Brush BrushRef
}

func (FillRectCommand) Type() CommandType { return CmdFillRect }

// DrawImageCommand draws an image into a destination rectangle.
type DrawImageCommand struct {
	Image   ImageRef
	DstRect Rect
}

func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

// DrawTextCommand draws a text run with its baseline at (X, Y).
type DrawTextCommand struct {
	Text       string
	X, Y       float64
	FontFamily string
	FontSize   float64
	Brush      BrushRef
}

func (DrawTextCommand) Type() CommandType { return CmdDrawText }

// FillRule determines which regions count as inside a path.
type FillRule uint8

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// LineCap is the shape of stroke endpoints.
type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin is the shape of stroke corners.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// Stroke is a complete stroke style.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	// DashPattern alternates dash and gap lengths; nil means solid.
	DashPattern []float64
	DashOffset  float64
}

// DefaultStroke returns the stroke style a fresh Recorder starts with.
func DefaultStroke() Stroke {
	return Stroke{Width: 1, MiterLimit: 4}
}

// Clone deep-copies the stroke, including the dash pattern.
func (s Stroke) Clone() Stroke {
	out := s
	if s.DashPattern != nil {
		out.DashPattern = append([]float64(nil), s.DashPattern...)
	}
	return out
}
