package game

import (
	"github.com/iburimskiy/portfolio-fx/internal/config"
	"github.com/iburimskiy/portfolio-fx/internal/effects"
)

const (
	sectionHeight = 420.0
	sectionPad    = 60.0
	cardWidth     = 220.0
	cardHeight    = 140.0
	cardGap       = 24.0
	inputWidth    = 360.0
	inputHeight   = 40.0

	// Elements count as seen once 10% of them is inside the viewport,
	// ignoring its bottom 50 px.
	revealThreshold = 0.1
	revealMargin    = 50.0
)

const heroTagline = "Building things for the web, one frame at a time."

type rect struct {
	x, y, w, h float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.x && x <= r.x+r.w && y >= r.y && y <= r.y+r.h
}

type card struct {
	title   string
	bounds  rect // page coordinates
	reveal  *effects.Reveal
	float   *effects.Float // nil for cards that stay put
	hovered bool
}

// lifted returns the card bounds with its hover float applied: scaled about
// the centre, then raised.
func (c *card) lifted() rect {
	if c.float == nil {
		return c.bounds
	}
	s := c.float.Scale()
	w, h := c.bounds.w*s, c.bounds.h*s
	return rect{
		x: c.bounds.x - (w-c.bounds.w)/2,
		y: c.bounds.y - (h-c.bounds.h)/2 + c.float.Offset(),
		w: w,
		h: h,
	}
}

type section struct {
	title  string
	top    float64
	height float64
	reveal *effects.Reveal
	tilt   float64 // degrees
	cards  []*card
}

// page is the scrollable demo document. Everything is kept in page
// coordinates; subtract scroll for the screen position.
type page struct {
	cfg      *config.Config
	sections []*section
	hero     *effects.Typewriter
	ripples  effects.Ripples
	label    effects.FloatingLabel
	input    rect

	viewW, viewH float64
	scroll       float64
	contentH     float64
}

var pageContent = []struct {
	title    string
	cards    []string
	floating bool
}{
	{title: "Portfolio"},
	{title: "About", cards: []string{"Background", "Approach"}},
	{title: "Projects", cards: []string{"Particle field", "Audio strip", "Morphing shapes", "Terminal host"}, floating: true},
	{title: "Skills", cards: []string{"Go", "Graphics", "Audio", "Tooling", "Testing"}, floating: true},
	{title: "Contact"},
}

func newPage(cfg *config.Config, src effects.Source) *page {
	p := &page{
		cfg:  cfg,
		hero: effects.NewTypewriter(heroTagline, cfg.Typing.Delay, src),
	}
	for i, c := range pageContent {
		s := &section{title: c.title, reveal: effects.NewReveal(0)}
		if i == 0 {
			// The hero is visible on load and skips the fade.
			s.reveal = nil
		}
		for j, title := range c.cards {
			cd := &card{title: title, reveal: effects.NewReveal(j)}
			if c.floating {
				cd.float = &effects.Float{}
			}
			s.cards = append(s.cards, cd)
		}
		p.sections = append(p.sections, s)
	}
	return p
}

// layout positions sections and cards for a viewport of the given size.
func (p *page) layout(w, h float64) {
	p.viewW, p.viewH = w, h

	cols := max(1, int((w-2*sectionPad+cardGap)/(cardWidth+cardGap)))
	top := 0.0
	for i, s := range p.sections {
		s.top = top
		s.height = sectionHeight
		if i == 0 {
			s.height = h
		}
		for j, c := range s.cards {
			row, col := j/cols, j%cols
			c.bounds = rect{
				x: sectionPad + float64(col)*(cardWidth+cardGap),
				y: top + sectionPad + 40 + float64(row)*(cardHeight+cardGap),
				w: cardWidth,
				h: cardHeight,
			}
			s.height = max(s.height, c.bounds.y+cardHeight+sectionPad-top)
		}
		top += s.height
	}
	last := p.sections[len(p.sections)-1]
	p.input = rect{x: sectionPad, y: last.top + sectionPad + 60, w: min(inputWidth, w-2*sectionPad), h: inputHeight}
	p.contentH = top
	p.scrollBy(0)
}

// scrollBy moves the page by dy pixels, clamped to the content.
func (p *page) scrollBy(dy float64) {
	p.scroll = min(max(p.scroll+dy, 0), max(p.contentH-p.viewH, 0))
}

// visible reports whether enough of the band [top, top+height) is on screen
// to reveal it.
func (p *page) visible(top, height float64) bool {
	if height <= 0 {
		return false
	}
	screenTop := top - p.scroll
	shown := min(screenTop+height, p.viewH-revealMargin) - max(screenTop, 0)
	return shown >= revealThreshold*height
}

// update advances every page effect by dt seconds. mx and my are the pointer
// in screen coordinates. It reports whether the pointer is over something
// interactive.
func (p *page) update(dt, mx, my float64) bool {
	py := my + p.scroll
	hovered := false

	if p.visible(p.sections[0].top, p.sections[0].height) {
		p.hero.Start()
	}
	p.hero.Update(dt)

	for _, s := range p.sections {
		if deg, ok := effects.TiltAngle(s.top-p.scroll, s.height, p.viewH, p.cfg.TiltDegrees); ok {
			s.tilt = deg
		}
		if s.reveal != nil {
			if p.visible(s.top, s.height) {
				s.reveal.Trigger()
			}
			s.reveal.Update(dt)
		}
		for _, c := range s.cards {
			if p.visible(c.bounds.y, c.bounds.h) {
				c.reveal.Trigger()
			}
			c.reveal.Update(dt)

			over := c.bounds.contains(mx, py)
			if over && !c.hovered {
				p.ripples.Spawn(mx, py)
			}
			c.hovered = over
			hovered = hovered || over
			if c.float != nil {
				c.float.SetHover(over)
				c.float.Update(dt)
			}
		}
	}
	p.ripples.Update(dt)
	p.label.Update(dt)
	return hovered || p.input.contains(mx, py)
}

// click focuses the contact input when the pointer is inside it and blurs it
// otherwise.
func (p *page) click(mx, my float64) {
	if p.input.contains(mx, my+p.scroll) {
		p.label.Focus()
		return
	}
	p.label.Blur()
}

// typeRunes appends to the focused input.
func (p *page) typeRunes(rs []rune) {
	if !p.label.Focused() || len(rs) == 0 {
		return
	}
	p.label.SetValue(p.label.Value() + string(rs))
}

// backspace removes the last rune of the focused input.
func (p *page) backspace() {
	if !p.label.Focused() {
		return
	}
	v := []rune(p.label.Value())
	if len(v) > 0 {
		p.label.SetValue(string(v[:len(v)-1]))
	}
}

// heroOffset is the extra vertical shift of the hero text.
func (p *page) heroOffset() float64 {
	return effects.ParallaxOffset(p.scroll, p.cfg.ParallaxHero)
}
