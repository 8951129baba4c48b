package telemetry

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/auditkit/jet/output"
)

// TimingCollector collects a tree of operation timings. Safe for concurrent
// use: the battery runner times its procedures from separate goroutines.
type TimingCollector struct {
	mu   sync.Mutex
	root *timerNode
}

// timerNode is one timed operation in the tree.
type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	children []*timerNode
}

// NewTimingCollector creates an empty timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins timing a top-level operation. The first Start becomes the
// root of the report; later top-level timers attach beneath it.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: time.Now()}
	if c.root == nil {
		c.root = node
	} else {
		c.root.children = append(c.root.children, node)
	}
	return &timingTimer{collector: c, node: node}
}

// Report writes the timing tree.
//
// Example output:
//
//	check journal.csv: 18ms
//	├─ load: 12ms
//	└─ analysis.run: 5ms
//	   ├─ A01: 1ms
//	   └─ A02: 1ms
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		return
	}

	name := c.root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(c.root.duration()))

	for i, child := range c.root.children {
		writeNode(w, child, "", i == len(c.root.children)-1, styles)
	}
}

func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return 0
	}
	return n.end.Sub(n.start)
}

// writeNode recursively renders one node of the timing tree.
func writeNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *output.Styles) {
	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	duration := node.duration()
	slow := duration >= 100*time.Millisecond
	timing := formatDuration(duration)
	lead := prefix + branch
	if styles != nil {
		lead = styles.Dim(lead)
		timing = styles.Timing(timing, slow)
	}
	_, _ = fmt.Fprintf(w, "%s%s: %s\n", lead, node.name, timing)

	for i, child := range node.children {
		writeNode(w, child, prefix+extension, i == len(node.children)-1, styles)
	}
}

// formatDuration shows milliseconds below a second, seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}

// timingTimer records into a TimingCollector.
type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
}

// End stops the timer.
func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()
	t.node.end = time.Now()
}

// Child creates a nested timer under this one.
func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	node := &timerNode{name: name, start: time.Now()}
	t.node.children = append(t.node.children, node)
	return &timingTimer{collector: t.collector, node: node}
}
