package touch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/pinchcrop/internal/viewport"
)

// ParseScript reads a gesture script. Each line is a sample:
//
//	start 120,300
//	move  130,290
//	start 130,290 260,410
//	move  110,270 280,430
//	end
//
// The points are the fingers still touching after the step. Blank lines
// and lines starting with # are skipped.
func ParseScript(r io.Reader) ([]*viewport.Event, error) {
	var events []*viewport.Event
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		kind, err := parseKind(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		ev := &viewport.Event{Kind: kind}
		for _, f := range fields[1:] {
			p, err := parsePoint(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			ev.Touches = append(ev.Touches, p)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func parseKind(s string) (viewport.EventKind, error) {
	switch strings.ToLower(s) {
	case "start", "touchstart":
		return viewport.EventStart, nil
	case "move", "touchmove":
		return viewport.EventMove, nil
	case "end", "touchend":
		return viewport.EventEnd, nil
	}
	return 0, fmt.Errorf("unknown step %q", s)
}

func parsePoint(s string) (viewport.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return viewport.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return viewport.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return viewport.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return viewport.Point{X: x, Y: y}, nil
}

// Replay dispatches events in order and returns how many reached a
// listener.
func Replay(d Dispatcher, events []*viewport.Event) int {
	n := 0
	for _, ev := range events {
		if d.Dispatch(ev) {
			n++
		}
	}
	return n
}
