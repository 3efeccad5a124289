package export

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/scene"
	"github.com/san-kum/constellation/internal/viz"
	"gonum.org/v1/gonum/spatial/r3"
)

func wellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return
			}
			t.Fatalf("invalid XML: %v", err)
		}
	}
}

func triangle(t *testing.T, proxy scene.Proxy) *scene.Scene {
	t.Helper()
	s, err := scene.New(
		[]r3.Vec{{X: -2}, {X: 2}, {Y: 2}},
		[]scene.Payload{{Title: "a & b", Date: "2024"}, {Title: "c", Date: "2024"}, {Title: "<d>", Date: "2024"}},
		scene.Options{Radius: 8, ProxySize: 0.3, Proxy: proxy},
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Connect([][]int{{1, 2}, {0, 2}, {0, 1}}); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFrameSVG(t *testing.T) {
	s := triangle(t, scene.ProxySphere)
	s.SetAppearance(1)
	cam := camera.New(75, 4.0/3.0, 0.1, 1000, 15)

	doc := FrameSVG(s, cam, 800, 600, viz.ThemeNight)
	wellFormed(t, doc)

	if got := strings.Count(doc, "<line "); got != 6 {
		t.Errorf("%d lines, want 6", got)
	}
	if got := strings.Count(doc, "<circle "); got != 3 {
		t.Errorf("%d circles, want 3", got)
	}
	if got := strings.Count(doc, string(viz.ThemeNight.Hover)); got != 1 {
		t.Errorf("hover colour used %d times, want 1", got)
	}
	if !strings.Contains(doc, `width="800" height="600"`) {
		t.Error("missing size")
	}
	if !strings.Contains(doc, "a &amp; b") || !strings.Contains(doc, "&lt;d&gt;") {
		t.Error("titles not escaped")
	}
}

func TestFrameSVG_Planes(t *testing.T) {
	s := triangle(t, scene.ProxyPlane)
	doc := FrameSVG(s, camera.New(75, 1, 0.1, 1000, 15), 400, 400, viz.ThemeOcean)
	wellFormed(t, doc)
	if strings.Contains(doc, "<circle ") {
		t.Error("plane proxies drawn as circles")
	}
	// one background rect plus one per node
	if got := strings.Count(doc, "<rect "); got != 4 {
		t.Errorf("%d rects, want 4", got)
	}
}

func TestFrameSVG_DropsBehindCamera(t *testing.T) {
	s, err := scene.New([]r3.Vec{{}, {Z: 30}}, nil, scene.Options{Radius: 8, ProxySize: 0.3})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Connect([][]int{{1}, {0}}); err != nil {
		t.Fatal(err)
	}
	doc := FrameSVG(s, camera.New(75, 1, 0.1, 1000, 15), 100, 100, viz.ThemeNight)
	if strings.Contains(doc, "<line ") {
		t.Error("line to a point behind the camera was drawn")
	}
	if got := strings.Count(doc, "<circle "); got != 1 {
		t.Errorf("%d circles, want 1", got)
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2, viz.ThemeNight) != "" {
		t.Error("nil canvas should give empty output")
	}

	c := viz.NewCanvas(4, 2)
	c.Set(0, 0, viz.InkNode)
	c.Set(5, 6, viz.InkLine)
	doc := CanvasToSVG(c, 3, viz.ThemeNight)
	wellFormed(t, doc)

	if got := strings.Count(doc, "<circle "); got != 2 {
		t.Errorf("%d dots, want 2", got)
	}
	if !strings.Contains(doc, `width="24" height="24"`) {
		t.Error("unexpected size")
	}
	if !strings.Contains(doc, string(viz.ThemeNight.Line)) {
		t.Error("line ink colour missing")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("a single value should give empty output")
	}
	doc := SeriesToSVG([]float64{1, 2, 3, 2}, 300, 100, "#00ff88")
	wellFormed(t, doc)
	if got := strings.Count(doc, " L"); got != 3 {
		t.Errorf("%d segments, want 3", got)
	}
	if !strings.Contains(doc, "M0.0,") || !strings.Contains(doc, "L300.0,") {
		t.Error("path does not span the width")
	}
}
