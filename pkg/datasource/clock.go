package datasource

import (
	"context"
	"sync"
	"time"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/format"
)

// Clock provides the current time under format.NowKey, converted to the
// selected timezone, and the zone name under "timezone".
type Clock struct {
	mu      sync.Mutex
	names   []string
	zones   []*time.Location
	current int
	now     func() time.Time
}

// NewClock returns a clock cycling through the given IANA zone names. With no
// zones the clock uses local time.
func NewClock(zones ...string) (*Clock, error) {
	c := &Clock{now: time.Now}
	if len(zones) == 0 {
		c.names = []string{time.Local.String()}
		c.zones = []*time.Location{time.Local}
		return c, nil
	}

	for _, name := range zones {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "unknown timezone %q", name).
				WithDetail("timezone", name)
		}
		c.names = append(c.names, name)
		c.zones = append(c.zones, loc)
	}
	return c, nil
}

// SetNow replaces the time function, for tests and replays.
func (c *Clock) SetNow(fn func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = fn
}

// Next switches to the following timezone and returns its name.
func (c *Clock) Next() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = (c.current + 1) % len(c.zones)
	return c.names[c.current]
}

// Zone returns the name of the selected timezone.
func (c *Clock) Zone() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.names[c.current]
}

func (c *Clock) Fetch(ctx context.Context) (format.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return format.Context{
		format.NowKey: c.now().In(c.zones[c.current]),
		"timezone":    c.names[c.current],
	}, nil
}
