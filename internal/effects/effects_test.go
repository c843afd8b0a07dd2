package effects

import (
	"math"
	"math/rand/v2"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/portfolio-fx/internal/config"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-4 {
		t.Errorf("%s = %f, want %f", name, got, want)
	}
}

func TestCursorFollowerEases(t *testing.T) {
	c := NewCursor(config.Default().Cursor)
	c.MoveTo(100, 200)

	x, y, _, _ := c.Dot()
	if x != 100 || y != 200 {
		t.Errorf("dot = (%v,%v), want (100,200)", x, y)
	}

	c.Update(1.0 / 60)
	rx, ry, _, _ := c.Ring()
	assertNear(t, "ring x after 1 frame", rx, 10)
	assertNear(t, "ring y after 1 frame", ry, 20)

	c.Update(1.0 / 60)
	rx, _, _, _ = c.Ring()
	assertNear(t, "ring x after 2 frames", rx, 19)

	for range 300 {
		c.Update(1.0 / 60)
	}
	rx, ry, _, _ = c.Ring()
	assertNear(t, "ring x settled", rx, 100)
	assertNear(t, "ring y settled", ry, 200)
}

func TestCursorHover(t *testing.T) {
	cfg := config.Default().Cursor
	c := NewCursor(cfg)

	_, _, size, clr := c.Dot()
	assertNear(t, "idle dot", size, 20)
	if clr != cursorColor {
		t.Errorf("idle color = %+v, want %+v", clr, cursorColor)
	}

	c.SetHover(true)
	if !c.Hovered() {
		t.Fatal("cursor should be hovered")
	}
	c.Update(0.5)
	_, _, size, clr = c.Dot()
	assertNear(t, "hover dot", size, 30)
	if clr != cursorHoverColor {
		t.Errorf("hover color = %+v, want %+v", clr, cursorHoverColor)
	}
	_, _, ring, _ := c.Ring()
	assertNear(t, "hover ring", ring, 60)

	c.SetHover(false)
	c.Update(0.1)
	_, _, ring, _ = c.Ring()
	if ring <= 40 || ring >= 60 {
		t.Errorf("ring mid-shrink = %v, want between 40 and 60", ring)
	}
	c.Update(0.5)
	_, _, ring, _ = c.Ring()
	assertNear(t, "idle ring", ring, 40)
}

func TestShapesCreation(t *testing.T) {
	cfg := config.Default().Shapes
	s := NewShapes(cfg, rand.New(rand.NewPCG(1, 2)), 7)

	if len(s.Shapes()) != 5 {
		t.Fatalf("shapes = %d, want 5", len(s.Shapes()))
	}
	for i, sh := range s.Shapes() {
		if sh.W < 100 || sh.W >= 300 || sh.H < 100 || sh.H >= 300 {
			t.Errorf("shape %d size = %vx%v, want within [100,300)", i, sh.W, sh.H)
		}
		if sh.Left < 0 || sh.Left >= 1 || sh.Top < 0 || sh.Top >= 1 {
			t.Errorf("shape %d at (%v,%v), want fractions of the viewport", i, sh.Left, sh.Top)
		}
		if sh.cur.scale != 1 {
			t.Errorf("shape %d initial scale = %v, want 1", i, sh.cur.scale)
		}
	}
}

func TestShapesMorphTowardsTarget(t *testing.T) {
	cfg := config.Default().Shapes
	s := NewShapes(cfg, rand.New(rand.NewPCG(3, 4)), 1)

	for range 3 * 60 {
		s.Update(1.0 / 60)
	}
	for i, sh := range s.Shapes() {
		if sh.cur.scale < 0.75 || sh.cur.scale > 1.25 {
			t.Errorf("shape %d scale = %v, want within [0.75,1.25]", i, sh.cur.scale)
		}
		if math.Abs(sh.cur.tx) > 50 || math.Abs(sh.cur.ty) > 50 {
			t.Errorf("shape %d offset = (%v,%v), want within ±50", i, sh.cur.tx, sh.cur.ty)
		}
		for j, r := range sh.cur.radii {
			if r < 0 || r > 50 {
				t.Errorf("shape %d radius %d = %v, want [0,50]", i, j, r)
			}
		}
	}

	p := s.Place(0, 1000, 800)
	if p.Scale != s.Shapes()[0].cur.scale {
		t.Errorf("placement scale = %v, want %v", p.Scale, s.Shapes()[0].cur.scale)
	}
	if p.Rotation < 0 || p.Rotation > 2*math.Pi {
		t.Errorf("rotation = %v rad, want within one turn", p.Rotation)
	}
}

func TestShapeOutline(t *testing.T) {
	sh := &Shape{W: 200, H: 100, cur: morph{scale: 1}}

	// Zero radii give the bounding box.
	pts := sh.Outline(8)
	if len(pts) != 8 {
		t.Fatalf("points = %d, want 8", len(pts))
	}
	assertNear(t, "right x", pts[0][0], 100)
	assertNear(t, "right y", pts[0][1], 0)
	assertNear(t, "bottom-right corner x", pts[1][0], 50)
	assertNear(t, "bottom-right corner y", pts[1][1], 50)

	// 50% radii everywhere give the inscribed ellipse.
	for i := range sh.cur.radii {
		sh.cur.radii[i] = 50
	}
	for i, p := range sh.Outline(32) {
		v := p[0]*p[0]/(100*100) + p[1]*p[1]/(50*50)
		if math.Abs(v-1) > 1e-9 {
			t.Errorf("point %d = %v not on ellipse (%v)", i, p, v)
		}
	}
}

func TestShapeGradient(t *testing.T) {
	sh := &Shape{
		W:    100,
		H:    100,
		From: colorful.Color{R: 1, G: 0, B: 0},
		To:   colorful.Color{R: 0, G: 0, B: 1},
	}

	bl := sh.ColorAt(-50, 50)
	tr := sh.ColorAt(50, -50)
	if bl != sh.From.BlendLab(sh.To, 0).Clamped() {
		t.Errorf("bottom-left = %v, want From", bl)
	}
	if tr != sh.From.BlendLab(sh.To, 1).Clamped() {
		t.Errorf("top-right = %v, want To", tr)
	}
}

func TestTypewriter(t *testing.T) {
	tw := NewTypewriter("héllo", config.Range{Min: 50, Max: 100}, constSource(0))

	tw.Update(1)
	if tw.Text() != "" {
		t.Errorf("text before start = %q, want empty", tw.Text())
	}

	tw.Start()
	tw.Update(0)
	if tw.Text() != "h" {
		t.Errorf("text = %q, want %q", tw.Text(), "h")
	}
	tw.Update(0.05)
	if tw.Text() != "hé" {
		t.Errorf("text = %q, want %q", tw.Text(), "hé")
	}
	tw.Update(0.049)
	if tw.Text() != "hé" {
		t.Errorf("text = %q, want %q before next delay", tw.Text(), "hé")
	}
	tw.Update(10)
	if !tw.Done() || tw.Text() != "héllo" {
		t.Errorf("text = %q done=%v, want full text", tw.Text(), tw.Done())
	}
}

func TestTypewriterDelayRange(t *testing.T) {
	tw := NewTypewriter("ab", config.Range{Min: 50, Max: 100}, constSource(0.999))
	tw.Start()
	tw.Update(0)
	tw.Update(0.098)
	if tw.Text() != "a" {
		t.Errorf("text = %q, want %q before ~100ms", tw.Text(), "a")
	}
	tw.Update(0.002)
	if tw.Text() != "ab" {
		t.Errorf("text = %q, want %q after ~100ms", tw.Text(), "ab")
	}
}

func TestRevealStagger(t *testing.T) {
	first := NewReveal(0)
	third := NewReveal(2)

	first.Update(1)
	if first.Alpha() != 0 || first.Offset() != 50 {
		t.Errorf("untriggered reveal = (%v,%v), want (0,50)", first.Alpha(), first.Offset())
	}

	first.Trigger()
	third.Trigger()
	first.Update(0.1)
	third.Update(0.1)
	if first.Alpha() <= 0 {
		t.Error("first element should have started fading")
	}
	if third.Alpha() != 0 {
		t.Errorf("third element alpha = %v, want 0 during stagger", third.Alpha())
	}

	for range 120 {
		first.Update(1.0 / 60)
		third.Update(1.0 / 60)
	}
	for name, r := range map[string]*Reveal{"first": first, "third": third} {
		if r.Alpha() != 1 || r.Offset() != 0 {
			t.Errorf("%s = (%v,%v), want (1,0)", name, r.Alpha(), r.Offset())
		}
	}
}

func TestRipples(t *testing.T) {
	var r Ripples
	r.Spawn(10, 20)
	r.Update(0.3)
	if len(r.Items()) != 1 {
		t.Fatalf("ripples = %d, want 1", len(r.Items()))
	}
	rp := r.Items()[0]
	assertNear(t, "scale halfway", rp.Scale, 2)
	assertNear(t, "alpha halfway", rp.Alpha, 0.15)

	r.Spawn(0, 0)
	r.Update(0.3)
	if len(r.Items()) != 1 {
		t.Fatalf("ripples = %d, want 1 after first expires", len(r.Items()))
	}
	if r.Items()[0].X != 0 {
		t.Error("the newer ripple should survive")
	}
}

func TestParallaxOffset(t *testing.T) {
	assertNear(t, "default speed", ParallaxOffset(200, DefaultParallaxSpeed), -100)
	assertNear(t, "hero speed", ParallaxOffset(200, 0.3), -60)
	assertNear(t, "no scroll", ParallaxOffset(0, 0.3), 0)
}

func TestTiltAngle(t *testing.T) {
	tests := []struct {
		name        string
		top, height float64
		want        float64
		wantOK      bool
	}{
		{name: "centred", top: 300, height: 200, want: 0, wantOK: true},
		{name: "below centre", top: 500, height: 200, want: 200.0 / 800 * 5, wantOK: true},
		{name: "above centre", top: -100, height: 200, want: -400.0 / 800 * 5, wantOK: true},
		{name: "below viewport", top: 800, height: 200, wantOK: false},
		{name: "above viewport", top: -300, height: 300, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TiltAngle(tt.top, tt.height, 800, 5)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok {
				assertNear(t, "angle", got, tt.want)
			}
		})
	}
}

func TestLoader(t *testing.T) {
	var l Loader
	if l.DotScale(0) != 0 {
		t.Errorf("dot 0 at t=0 = %v, want 0", l.DotScale(0))
	}

	l.Update(0.56) // 40% of the 1.4 s cycle
	assertNear(t, "dot 0 peak", l.DotScale(0), 1)
	if l.DotScale(1) >= 1 {
		t.Errorf("dot 1 = %v, should lag dot 0", l.DotScale(1))
	}
	if l.Opacity() != 1 {
		t.Errorf("opacity before load = %v, want 1", l.Opacity())
	}

	l.MarkLoaded()
	l.Update(1.0)
	if l.Opacity() != 1 {
		t.Errorf("opacity during hold = %v, want 1", l.Opacity())
	}
	l.Update(0.25)
	assertNear(t, "opacity mid-fade", l.Opacity(), 0.5)
	l.Update(0.3)
	if !l.Done() {
		t.Errorf("loader should be done, opacity = %v", l.Opacity())
	}
}

func TestFloatingLabel(t *testing.T) {
	var f FloatingLabel

	f.Focus()
	f.Update(0.125)
	if x := f.Shake(); x >= 0 {
		t.Errorf("shake at 25%% = %v, want negative", x)
	}
	f.Update(1)
	dy, scale := f.Label()
	assertNear(t, "lifted dy", dy, -10)
	assertNear(t, "lifted scale", scale, 0.9)
	if f.Shake() != 0 {
		t.Errorf("shake after 0.5s = %v, want 0", f.Shake())
	}
	if !f.Highlighted() {
		t.Error("focused label should be highlighted")
	}

	f.SetValue("ada")
	f.Blur()
	f.Update(1)
	dy, _ = f.Label()
	assertNear(t, "dy with value", dy, -10)
	if !f.Highlighted() {
		t.Error("label with value should stay highlighted")
	}

	f.Focus()
	f.SetValue("")
	f.Blur()
	f.Update(1)
	dy, scale = f.Label()
	assertNear(t, "resting dy", dy, 0)
	assertNear(t, "resting scale", scale, 1)
	if f.Highlighted() {
		t.Error("empty blurred label should not be highlighted")
	}
}

func TestFloat(t *testing.T) {
	var f Float
	assertNear(t, "resting offset", f.Offset(), 0)
	assertNear(t, "resting scale", f.Scale(), 1)

	f.SetHover(true)
	f.Update(0.25)
	if f.Offset() >= 0 || f.Offset() <= -FloatLift*1.2 {
		t.Errorf("offset midway = %v, want between 0 and about -%d", f.Offset(), FloatLift)
	}
	f.Update(0.25)
	assertNear(t, "raised offset", f.Offset(), -20)
	assertNear(t, "raised scale", f.Scale(), 1.05)

	// Repeated hover reports do not restart the tween.
	f.SetHover(true)
	f.Update(0.1)
	assertNear(t, "held offset", f.Offset(), -20)

	f.SetHover(false)
	f.Update(0.5)
	assertNear(t, "settled offset", f.Offset(), 0)
	assertNear(t, "settled scale", f.Scale(), 1)
}

func TestFloatOvershoots(t *testing.T) {
	var f Float
	f.SetHover(true)
	peak := 0.0
	for range 30 {
		f.Update(1.0 / 60)
		peak = min(peak, f.Offset())
	}
	if peak >= -FloatLift {
		t.Errorf("peak offset = %v, want past -%d", peak, FloatLift)
	}
}
