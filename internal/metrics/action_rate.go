package metrics

import "github.com/san-kum/bounceball/internal/dynamo"

// ActionRate is the fraction of steps on which the paddle swung.
type ActionRate struct {
	name    string
	hits    int
	samples int
}

func NewActionRate() *ActionRate {
	return &ActionRate{
		name: "action_rate",
	}
}

func (c *ActionRate) Name() string {
	return c.name
}

func (c *ActionRate) Observe(x dynamo.State, a dynamo.Action, t float64) {
	if a == dynamo.ActionHit {
		c.hits++
	}
	c.samples++
}

func (c *ActionRate) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.samples)
}

func (c *ActionRate) Reset() {
	c.hits = 0
	c.samples = 0
}
