// Package chrome captures element geometry from a page rendered by
// headless Chrome, so offsets can be resolved against a real layout
// engine instead of a hand-written fixture.
package chrome

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/plumbgeom/position"
)

// Node is the captured geometry of one element. Handles start at 1; 0
// means "no element".
type Node struct {
	Handle       int     `json:"handle"`
	ID           string  `json:"id,omitempty"`
	Tag          string  `json:"tag"`
	OffsetLeft   float64 `json:"offsetLeft"`
	OffsetTop    float64 `json:"offsetTop"`
	OffsetWidth  float64 `json:"offsetWidth"`
	OffsetHeight float64 `json:"offsetHeight"`
	ScrollLeft   float64 `json:"scrollLeft"`
	ScrollTop    float64 `json:"scrollTop"`
	Position     string  `json:"position"`
	OffsetParent int     `json:"offsetParent"`
	IsBody       bool    `json:"isBody,omitempty"`
}

// Snapshot is a frozen copy of a page's layout. It implements
// position.Adapter[int].
type Snapshot struct {
	nodes []Node
	byID  map[string]int
}

var _ position.Adapter[int] = (*Snapshot)(nil)

// snapshotScript collects every element in document order.
const snapshotScript = `(() => {
  const els = Array.from(document.querySelectorAll('*'));
  const handles = new Map(els.map((e, i) => [e, i + 1]));
  return els.map((e, i) => ({
    handle: i + 1,
    id: e.id || '',
    tag: e.tagName.toLowerCase(),
    offsetLeft: e.offsetLeft || 0,
    offsetTop: e.offsetTop || 0,
    offsetWidth: e.offsetWidth || 0,
    offsetHeight: e.offsetHeight || 0,
    scrollLeft: e.scrollLeft || 0,
    scrollTop: e.scrollTop || 0,
    position: getComputedStyle(e).position,
    offsetParent: e.offsetParent ? handles.get(e.offsetParent) : 0,
    isBody: e === document.body,
  }));
})()`

// Options configures Capture.
type Options struct {
	Timeout time.Duration // default 30s
	Logger  *zap.Logger
	// Setup runs after navigation and before the snapshot, e.g. to scroll.
	Setup chromedp.Tasks
}

// Capture loads url in headless Chrome and snapshots its layout.
func Capture(ctx context.Context, url string, opts Options) (*Snapshot, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()
	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, timeout)
	defer cancelTimeout()

	var nodes []Node
	tasks := chromedp.Tasks{chromedp.Navigate(url)}
	tasks = append(tasks, opts.Setup...)
	tasks = append(tasks, chromedp.Evaluate(snapshotScript, &nodes))

	logger.Debug("capturing layout", zap.String("url", url))
	if err := chromedp.Run(taskCtx, tasks); err != nil {
		return nil, fmt.Errorf("chromedp capture %s: %w", url, err)
	}
	logger.Debug("layout captured", zap.String("url", url), zap.Int("elements", len(nodes)))
	return NewSnapshot(nodes)
}

// NewSnapshot builds a snapshot from captured nodes. Handles must be
// 1..len(nodes) in order and offset parents must refer to captured nodes.
func NewSnapshot(nodes []Node) (*Snapshot, error) {
	s := &Snapshot{nodes: nodes, byID: make(map[string]int)}
	for i, n := range nodes {
		if n.Handle != i+1 {
			return nil, fmt.Errorf("node %d has handle %d", i, n.Handle)
		}
		if n.OffsetParent < 0 || n.OffsetParent > len(nodes) {
			return nil, fmt.Errorf("node %d: offset parent %d out of range", n.Handle, n.OffsetParent)
		}
		if n.ID != "" {
			if _, dup := s.byID[n.ID]; !dup {
				s.byID[n.ID] = n.Handle
			}
		}
	}
	return s, nil
}

// Decode reads a snapshot saved as a JSON array of nodes.
func Decode(data []byte) (*Snapshot, error) {
	var nodes []Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return NewSnapshot(nodes)
}

// MarshalJSON encodes the snapshot in the form Decode reads.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.nodes)
}

// Lookup returns the handle of the first element with the given id.
func (s *Snapshot) Lookup(id string) (int, bool) {
	h, ok := s.byID[id]
	return h, ok
}

// Node returns the captured node for a handle.
func (s *Snapshot) Node(handle int) (Node, bool) {
	if handle < 1 || handle > len(s.nodes) {
		return Node{}, false
	}
	return s.nodes[handle-1], true
}

// Len returns the number of captured elements.
func (s *Snapshot) Len() int {
	return len(s.nodes)
}

func (s *Snapshot) Box(handle int) position.Box {
	n, _ := s.Node(handle)
	return position.Box{
		OffsetLeft:   n.OffsetLeft,
		OffsetTop:    n.OffsetTop,
		OffsetWidth:  n.OffsetWidth,
		OffsetHeight: n.OffsetHeight,
		ScrollLeft:   n.ScrollLeft,
		ScrollTop:    n.ScrollTop,
	}
}

func (s *Snapshot) OffsetParent(handle int) int {
	n, _ := s.Node(handle)
	return n.OffsetParent
}

// ComputedStyle only knows "position"; other properties read as "".
func (s *Snapshot) ComputedStyle(handle int, property string) string {
	n, ok := s.Node(handle)
	if !ok || property != "position" {
		return ""
	}
	return n.Position
}

func (s *Snapshot) IsRoot(handle int) bool {
	n, _ := s.Node(handle)
	return n.IsBody
}
