package canvas

import (
	"fmt"
	"strings"
)

// Op is one recorded surface call.
type Op struct {
	Name string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
}

func (o Op) String() string {
	if len(o.Args) == 0 {
		return o.Name
	}
	parts := make([]string, len(o.Args))
	for i, a := range o.Args {
		parts[i] = fmt.Sprintf("%g", a)
	}
	return o.Name + "(" + strings.Join(parts, ",") + ")"
}

// Recorder is a Surface that remembers every call in order.
// It backs snapshot tests and the "ops" section of JSON output.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) add(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args})
}

func (r *Recorder) Resize(width, height float64)   { r.add("resize", width, height) }
func (r *Recorder) Clear()                         { r.add("clear") }
func (r *Recorder) Triangle(x, y, side float64)    { r.add("triangle", x, y, side) }
func (r *Recorder) RoundRect(x, y, size float64)   { r.add("round_rect", x, y, size) }
func (r *Recorder) Circle(x, y, radius float64)    { r.add("circle", x, y, radius) }
func (r *Recorder) Ring(x, y, radius float64)      { r.add("ring", x, y, radius) }
func (r *Recorder) MultiSymbol(x, y, w, h float64) { r.add("multi_symbol", x, y, w, h) }
func (r *Recorder) StrokeRect(x, y, w, h float64)  { r.add("stroke_rect", x, y, w, h) }

// String renders the recording one op per line.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, op := range r.Ops {
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
	return b.String()
}

var _ Surface = (*Recorder)(nil)
