// Command plumbgeom resolves element offsets and endpoint geometry for an
// HTML layout fixture or a live page.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/plumbgeom/chrome"
	"github.com/chrisuehlinger/plumbgeom/endpoint"
	mcpserver "github.com/chrisuehlinger/plumbgeom/mcp"
	"github.com/chrisuehlinger/plumbgeom/network"
	"github.com/chrisuehlinger/plumbgeom/position"
	"github.com/chrisuehlinger/plumbgeom/render"
	"github.com/chrisuehlinger/plumbgeom/ui"
)

func main() {
	var cfg config
	flag.StringVar(&cfg.Fixture, "fixture", "", "HTML layout fixture path or http(s) URL")
	flag.StringVar(&cfg.Element, "element", "", "id of the element to resolve")
	flag.StringVar(&cfg.Container, "container", "", "id of the reference container (empty for the document)")
	flag.BoolVar(&cfg.RelativeToRoot, "root", false, "resolve relative to the document root")
	flag.StringVar(&cfg.Endpoint, "endpoint", "Dot", "endpoint type")
	flag.Float64Var(&cfg.Radius, "radius", 0, "Dot radius (0 for the default)")
	flag.StringVar(&cfg.Anchor, "anchor", "center", "anchor name")
	flag.StringVar(&cfg.Style.Stroke, "stroke", "", "endpoint stroke color")
	flag.Float64Var(&cfg.Style.StrokeWidth, "stroke-width", 0, "endpoint stroke width (0 for 1 when stroked)")
	flag.StringVar(&cfg.Style.Fill, "fill", "", "endpoint fill color")
	flag.StringVar(&cfg.PNG, "png", "", "write the rendered fixture to this PNG file")
	flag.StringVar(&cfg.Script, "script", "", "run this script with the plumb API bound to the fixture")
	watch := flag.Bool("watch", false, "re-run when the fixture changes")
	view := flag.Bool("view", false, "open the fixture in a viewer window")
	serveMCP := flag.Bool("mcp", false, "serve MCP tools on stdio")
	url := flag.String("url", "", "capture the layout of this page with headless Chrome")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *serveMCP:
		err = mcpserver.New(mcpserver.Deps{Logger: logger}).ServeStdio()
	case *url != "":
		err = runURL(ctx, *url, cfg, logger)
	case cfg.Fixture == "":
		flag.Usage()
		os.Exit(2)
	case *watch && network.IsRemote(cfg.Fixture):
		err = fmt.Errorf("-watch needs a local fixture, got %s", cfg.Fixture)
	case *view:
		err = runViewer(ctx, cfg, *watch, logger)
	case *watch:
		err = watchFixture(ctx, cfg.Fixture, logger, func() {
			if err := runFixture(cfg, logger); err != nil {
				logger.Error("run failed", zap.Error(err))
			}
		})
	default:
		err = runFixture(cfg, logger)
	}
	if err != nil {
		logger.Error("plumbgeom failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// runFixture measures the configured element and prints the report.
func runFixture(cfg config, logger *zap.Logger) error {
	fixture, err := loadFixture(cfg.Fixture)
	if err != nil {
		return err
	}
	resolver := position.NewDOM(position.Options{Logger: logger})

	if cfg.Script != "" {
		if err := runScript(cfg.Script, fixture.Document, resolver, logger); err != nil {
			return err
		}
	}
	if cfg.PNG != "" {
		if err := writePNG(cfg, fixture.Document, resolver); err != nil {
			return err
		}
		logger.Info("wrote image", zap.String("path", cfg.PNG))
	}
	if cfg.Element == "" {
		return nil
	}

	el, err := fixture.Document.LookupElementByID(cfg.Element)
	if err != nil {
		return err
	}
	container, err := lookupContainer(fixture.Document, cfg.Container)
	if err != nil {
		return err
	}
	rep, err := measure(resolver, el, container, cfg, endpoint.Default)
	if err != nil {
		return err
	}
	return printReport(rep)
}

// runURL measures the configured element on a live page.
func runURL(ctx context.Context, url string, cfg config, logger *zap.Logger) error {
	if cfg.Element == "" {
		return fmt.Errorf("-url needs -element")
	}
	snap, err := chrome.Capture(ctx, url, chrome.Options{Logger: logger})
	if err != nil {
		return err
	}

	el, ok := snap.Lookup(cfg.Element)
	if !ok {
		return fmt.Errorf("no element with id %s on %s", cfg.Element, url)
	}
	var container int
	if cfg.Container != "" {
		if container, ok = snap.Lookup(cfg.Container); !ok {
			return fmt.Errorf("no element with id %s on %s", cfg.Container, url)
		}
	}

	resolver := position.New[int](snap, position.Options{Logger: logger})
	rep, err := measure(resolver, el, container, cfg, endpoint.Default)
	if err != nil {
		return err
	}
	return printReport(rep)
}

// runViewer opens the fixture in the viewer, reloading it on change when
// watch is set.
func runViewer(ctx context.Context, cfg config, watch bool, logger *zap.Logger) error {
	load := func(path string) (render.Scene, error) {
		c := cfg
		c.Fixture = path
		return buildScene(c, logger)
	}

	viewer := ui.NewViewer(ui.NewSession("plumbgeom", 900, 700), load, logger)
	viewer.Open(cfg.Fixture)

	if watch {
		go func() {
			err := watchFixture(ctx, cfg.Fixture, logger, func() { viewer.Reload(cfg.Fixture) })
			if err != nil {
				logger.Error("watch failed", zap.Error(err))
			}
		}()
	}
	viewer.ShowAndRun()
	return nil
}

func printReport(rep report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
