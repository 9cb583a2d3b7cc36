package plotly

// Title is rendered by Plotly as {"text": "..."}.
type Title struct {
	Text string `json:"text"`
}

func NewTitle(text string) *Title {
	return &Title{Text: text}
}

type Font struct {
	Color  string  `json:"color,omitempty"`
	Family string  `json:"family,omitempty"`
	Size   float64 `json:"size,omitempty"`
}

// Axis configures one cartesian or scene axis.
type Axis struct {
	Title     *Title `json:"title,omitempty"`
	TickColor string `json:"tickcolor,omitempty"`
	GridColor string `json:"gridcolor,omitempty"`
}

func NewAxis() *Axis {
	return &Axis{}
}

func (a *Axis) WithTitle(text string) *Axis {
	a.Title = NewTitle(text)
	return a
}

func (a *Axis) WithTickColor(c string) *Axis {
	a.TickColor = c
	return a
}

func (a *Axis) WithGridColor(c string) *Axis {
	a.GridColor = c
	return a
}

// Scene holds the three axes of a 3D plot.
type Scene struct {
	XAxis *Axis `json:"xaxis,omitempty"`
	YAxis *Axis `json:"yaxis,omitempty"`
	ZAxis *Axis `json:"zaxis,omitempty"`
}

type Layout struct {
	Title           *Title `json:"title,omitempty"`
	PlotBackground  string `json:"plot_bgcolor,omitempty"`
	PaperBackground string `json:"paper_bgcolor,omitempty"`
	Font            *Font  `json:"font,omitempty"`
	Scene           *Scene `json:"scene,omitempty"`
	XAxis           *Axis  `json:"xaxis,omitempty"`
	YAxis           *Axis  `json:"yaxis,omitempty"`
	ZAxis           *Axis  `json:"zaxis,omitempty"`
}

func NewLayout() *Layout {
	return &Layout{}
}

func (l *Layout) WithTitle(text string) *Layout {
	l.Title = NewTitle(text)
	return l
}

func (l *Layout) WithBackground(plot, paper string) *Layout {
	l.PlotBackground = plot
	l.PaperBackground = paper
	return l
}

func (l *Layout) WithFont(f *Font) *Layout {
	l.Font = f
	return l
}

func (l *Layout) WithScene(s *Scene) *Layout {
	l.Scene = s
	return l
}

func (l *Layout) WithAxes(x, y, z *Axis) *Layout {
	l.XAxis, l.YAxis, l.ZAxis = x, y, z
	return l
}
