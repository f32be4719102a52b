package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/plumbgeom/endpoint"
	"github.com/chrisuehlinger/plumbgeom/html"
	"github.com/chrisuehlinger/plumbgeom/position"
)

const fixtureHTML = `<body>
<div id="canvas" style="position: relative" data-offset-left="100" data-offset-top="50" data-offset-width="300" data-offset-height="200" data-scroll-top="20">
  <div id="node" data-offset-left="10" data-offset-top="5" data-offset-width="40" data-offset-height="30" data-anchor="left"></div>
</div>
</body>`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.html")
	if err := os.WriteFile(path, []byte(fixtureHTML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMeasureInContainer(t *testing.T) {
	doc, err := html.Parse(fixtureHTML)
	if err != nil {
		t.Fatal(err)
	}
	node, _ := doc.LookupElementByID("node")
	canvas, _ := doc.LookupElementByID("canvas")

	cfg := config{Element: "node", Endpoint: "Dot", Radius: 5, Anchor: "right",
		Style: endpoint.PaintStyle{Stroke: "black", StrokeWidth: 2}}
	rep, err := measure(position.NewDOM(position.Options{}), node, canvas, cfg, endpoint.Default)
	if err != nil {
		t.Fatalf("measure failed: %v", err)
	}

	if rep.Offset.Left != 10 || rep.Offset.Top != -15 {
		t.Errorf("Expected offset {10 -15}, got %+v", rep.Offset)
	}
	if rep.Anchor.X != 50 || rep.Anchor.Y != 0 || rep.Anchor.OX != 1 {
		t.Errorf("Expected right anchor at (50, 0), got %+v", rep.Anchor)
	}
	want := []float64{43, -7, 14, 14, 5}
	for i, v := range want {
		if rep.Endpoint.Tuple[i] != v {
			t.Errorf("Expected tuple %v, got %v", want, rep.Endpoint.Tuple)
			break
		}
	}
	if rep.Endpoint.Type != "Dot" {
		t.Errorf("Expected Dot, got %s", rep.Endpoint.Type)
	}
}

func TestMeasureErrors(t *testing.T) {
	doc, _ := html.Parse(fixtureHTML)
	node, _ := doc.LookupElementByID("node")
	r := position.NewDOM(position.Options{})

	if _, err := measure(r, node, nil, config{Endpoint: "Dot", Anchor: "middle"}, endpoint.Default); err == nil || !strings.Contains(err.Error(), "unknown anchor") {
		t.Errorf("Expected unknown anchor error, got %v", err)
	}
	if _, err := measure(r, node, nil, config{Endpoint: "Blob", Anchor: "top"}, endpoint.Default); !errors.Is(err, endpoint.ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType, got %v", err)
	}
	if _, err := measure(r, node, nil, config{Endpoint: "Dot", Anchor: "top", Radius: -2}, endpoint.Default); !errors.Is(err, endpoint.ErrInvalidParam) {
		t.Errorf("Expected ErrInvalidParam, got %v", err)
	}
}

func TestBuildSceneAttachesAnchoredElements(t *testing.T) {
	cfg := config{Fixture: writeFixture(t), Endpoint: "Dot", Anchor: "center"}
	scene, err := buildScene(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("buildScene failed: %v", err)
	}
	if len(scene.Boxes) != 2 {
		t.Errorf("Expected 2 boxes, got %d", len(scene.Boxes))
	}
	if len(scene.Endpoints) != 1 {
		t.Fatalf("Expected 1 endpoint from data-anchor, got %d", len(scene.Endpoints))
	}
	// node at (110, 35) in document coordinates; left anchor at (110, 50).
	got := scene.Endpoints[0].Geometry.Tuple()
	if got[0] != 100 || got[1] != 40 {
		t.Errorf("Expected dot at (100, 40), got %v", got)
	}

	cfg.Element = "canvas"
	if scene, err = buildScene(cfg, zap.NewNop()); err != nil || len(scene.Endpoints) != 2 {
		t.Errorf("Expected 2 endpoints with -element, got %d (%v)", len(scene.Endpoints), err)
	}
}

func TestWritePNG(t *testing.T) {
	cfg := config{Fixture: writeFixture(t), Endpoint: "Dot", Anchor: "center",
		PNG: filepath.Join(t.TempDir(), "out.png")}
	fixture, err := loadFixture(cfg.Fixture)
	if err != nil {
		t.Fatal(err)
	}
	if err := writePNG(cfg, fixture.Document, position.NewDOM(position.Options{})); err != nil {
		t.Fatalf("writePNG failed: %v", err)
	}
	data, err := os.ReadFile(cfg.PNG)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Error("Expected a PNG file")
	}
}

func TestRunScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "check.js")
	code := `if (plumb.getOffset("node", true).left !== 110) throw new Error("bad offset");`
	if err := os.WriteFile(script, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, _ := html.Parse(fixtureHTML)
	if err := runScript(script, doc, position.NewDOM(position.Options{}), zap.NewNop()); err != nil {
		t.Errorf("Expected script to pass, got %v", err)
	}
}

func TestWatchFixtureRerunsOnWrite(t *testing.T) {
	path := writeFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- watchFixture(ctx, path, zap.NewNop(), func() { runs <- struct{}{} })
	}()

	select {
	case <-runs:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected an initial run")
	}

	if err := os.WriteFile(path, []byte(fixtureHTML+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected a run after the write")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Expected clean shutdown, got %v", err)
	}
}

func TestWatchFixtureRunsDoNotOverlap(t *testing.T) {
	path := writeFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var active atomic.Int32
	var overlapped atomic.Bool
	runs := make(chan struct{}, 8)
	fn := func() {
		if active.Add(1) > 1 {
			overlapped.Store(true)
		}
		time.Sleep(watchDebounce + 200*time.Millisecond)
		active.Add(-1)
		runs <- struct{}{}
	}
	done := make(chan error, 1)
	go func() {
		done <- watchFixture(ctx, path, zap.NewNop(), fn)
	}()

	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected an initial run")
	}

	// The second write lands while the first rerun is still in progress.
	for i := 0; i < 2; i++ {
		if err := os.WriteFile(path, []byte(fixtureHTML+strings.Repeat("\n", i+1)), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(watchDebounce + 100*time.Millisecond)
	}
	for i := 0; i < 2; i++ {
		select {
		case <-runs:
		case <-time.After(5 * time.Second):
			t.Fatalf("Expected rerun %d", i+1)
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Expected clean shutdown, got %v", err)
	}
	if overlapped.Load() {
		t.Error("Expected fixture runs never to overlap")
	}
	if n := active.Load(); n != 0 {
		t.Errorf("Expected no run in progress after shutdown, got %d", n)
	}
}
