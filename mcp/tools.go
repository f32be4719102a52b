package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
	"seehuhn.de/go/geom/vec"

	"github.com/chrisuehlinger/plumbgeom/anchor"
	"github.com/chrisuehlinger/plumbgeom/dom"
	"github.com/chrisuehlinger/plumbgeom/endpoint"
	"github.com/chrisuehlinger/plumbgeom/html"
	"github.com/chrisuehlinger/plumbgeom/network"
)

func (s *Server) registerFixtureTools() {
	s.mcp.AddTool(mcp.NewTool("load_fixture",
		mcp.WithDescription("Parse an HTML layout fixture. Geometry comes from data-offset-*, data-scroll-* and data-offset-parent attributes. Returns a documentId."),
		mcp.WithString("html", mcp.Description("HTML source of the fixture")),
		mcp.WithString("source", mcp.Description("Path or http(s) URL of the fixture, used when html is empty")),
	), s.handleLoadFixture)

	s.mcp.AddTool(mcp.NewTool("unload_fixture",
		mcp.WithDescription("Forget a loaded fixture"),
		mcp.WithString("documentId", mcp.Description("ID returned by load_fixture"), mcp.Required()),
	), s.handleUnloadFixture)
}

func (s *Server) registerGeometryTools() {
	s.mcp.AddTool(mcp.NewTool("resolve_offset",
		mcp.WithDescription("Resolve an element's offset relative to a container, correcting for scrolled ancestors"),
		mcp.WithString("documentId", mcp.Description("ID returned by load_fixture"), mcp.Required()),
		mcp.WithString("elementId", mcp.Description("id attribute of the element"), mcp.Required()),
		mcp.WithString("containerId", mcp.Description("id attribute of the container (optional, none means document coordinates)")),
		mcp.WithBoolean("relativeToRoot", mcp.Description("Walk all the way to the root, ignoring the container")),
	), s.handleResolveOffset)

	s.mcp.AddTool(mcp.NewTool("element_size",
		mcp.WithDescription("Return an element's offset width and height"),
		mcp.WithString("documentId", mcp.Description("ID returned by load_fixture"), mcp.Required()),
		mcp.WithString("elementId", mcp.Description("id attribute of the element"), mcp.Required()),
	), s.handleElementSize)

	s.mcp.AddTool(mcp.NewTool("anchor_position",
		mcp.WithDescription("Place a named anchor (top, bottom, left, right, center, topleft, ...) on an element in document coordinates"),
		mcp.WithString("documentId", mcp.Description("ID returned by load_fixture"), mcp.Required()),
		mcp.WithString("elementId", mcp.Description("id attribute of the element"), mcp.Required()),
		mcp.WithString("anchor", mcp.Description("Anchor name")),
	), s.handleAnchorPosition)

	s.mcp.AddTool(mcp.NewTool("compute_endpoint",
		mcp.WithDescription("Compute the bounding geometry of an endpoint of the given type centred on an anchor point"),
		mcp.WithString("type", mcp.Description("Endpoint type, e.g. Dot")),
		mcp.WithString("params", mcp.Description("JSON object of constructor parameters, e.g. {\"radius\": 10}")),
		mcp.WithNumber("x", mcp.Description("Anchor x"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Anchor y"), mcp.Required()),
		mcp.WithNumber("ox", mcp.Description("Orientation x")),
		mcp.WithNumber("oy", mcp.Description("Orientation y")),
		mcp.WithString("fill", mcp.Description("Fill color")),
		mcp.WithString("stroke", mcp.Description("Stroke color; a stroke inflates the geometry")),
		mcp.WithNumber("strokeWidth", mcp.Description("Stroke width (default 1 when stroked)")),
	), s.handleComputeEndpoint)

	s.mcp.AddTool(mcp.NewTool("list_endpoint_types",
		mcp.WithDescription("List registered endpoint types"),
	), s.handleListEndpointTypes)
}

func (s *Server) handleLoadFixture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var doc *dom.Document
	if src := req.GetString("html", ""); strings.TrimSpace(src) != "" {
		d, err := html.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("load fixture: %w", err)
		}
		doc = d
	} else if source := req.GetString("source", ""); source != "" {
		f, err := network.LoadFixture(ctx, nil, source)
		if err != nil {
			return nil, fmt.Errorf("load fixture: %w", err)
		}
		doc = f.Document
	} else {
		return nil, fmt.Errorf("html or source is required")
	}
	id := s.AddDocument(doc)

	var ids []string
	for _, el := range doc.Elements() {
		if el.ID() != "" {
			ids = append(ids, el.ID())
		}
	}
	s.logger.Debug("fixture loaded", zap.String("documentId", id), zap.Int("elements", len(ids)))
	return jsonResult(map[string]any{"documentId": id, "elements": ids})
}

func (s *Server) handleUnloadFixture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("documentId", "")
	if _, err := s.document(id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	delete(s.docs, id)
	s.mu.Unlock()
	return textResult(fmt.Sprintf("Unloaded %s", id)), nil
}

// lookup resolves the documentId and an element id argument.
func (s *Server) lookup(req mcp.CallToolRequest, key string) (*document, *dom.Element, error) {
	d, err := s.document(req.GetString("documentId", ""))
	if err != nil {
		return nil, nil, err
	}
	id := req.GetString(key, "")
	if id == "" {
		return d, nil, nil
	}
	el, err := d.doc.LookupElementByID(id)
	if err != nil {
		return nil, nil, err
	}
	return d, el, nil
}

func (s *Server) handleResolveOffset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, el, err := s.lookup(req, "elementId")
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("elementId is required")
	}
	_, container, err := s.lookup(req, "containerId")
	if err != nil {
		return nil, err
	}
	relativeToRoot, _ := req.GetArguments()["relativeToRoot"].(bool)

	return jsonResult(d.resolver.Resolve(el, relativeToRoot, container))
}

func (s *Server) handleElementSize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, el, err := s.lookup(req, "elementId")
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("elementId is required")
	}
	return jsonResult(d.resolver.Size(el))
}

func (s *Server) handleAnchorPosition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, el, err := s.lookup(req, "elementId")
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("elementId is required")
	}
	name := req.GetString("anchor", "center")
	a, ok := anchor.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown anchor %q (known: %s)", name, strings.Join(anchor.Names(), ", "))
	}
	pos := a.Compute(d.resolver.Resolve(el, true, nil), d.resolver.Size(el))
	return jsonResult(map[string]float64{
		"x":  pos.Point.X,
		"y":  pos.Point.Y,
		"ox": pos.Orientation.X,
		"oy": pos.Orientation.Y,
	})
}

func (s *Server) handleComputeEndpoint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	typeName := req.GetString("type", endpoint.DotType)
	var params endpoint.Params
	if raw := req.GetString("params", ""); raw != "" {
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&params); err != nil {
			return nil, fmt.Errorf("params: %w", err)
		}
	}

	x, hasX := args["x"].(float64)
	y, hasY := args["y"].(float64)
	if !hasX || !hasY {
		return nil, fmt.Errorf("x and y are required")
	}
	ox, _ := args["ox"].(float64)
	oy, _ := args["oy"].(float64)
	width, _ := args["strokeWidth"].(float64)

	rep, err := s.registry.New(typeName, params)
	if err != nil {
		return nil, err
	}
	pos := anchor.ComputedAnchorPosition{
		Point:       vec.Vec2{X: x, Y: y},
		Orientation: anchor.Orientation{X: ox, Y: oy},
	}
	style := endpoint.PaintStyle{
		Fill:        req.GetString("fill", ""),
		Stroke:      req.GetString("stroke", ""),
		StrokeWidth: width,
	}
	geom := rep.Compute(pos, style)
	b := geom.Bounds()

	return jsonResult(map[string]any{
		"type":   rep.Type(),
		"tuple":  geom.Tuple(),
		"bounds": []float64{b.LLx, b.LLy, b.URx, b.URy},
	})
}

func (s *Server) handleListEndpointTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.registry.Types())
}
