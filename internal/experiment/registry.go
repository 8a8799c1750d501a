package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/bounceball/internal/control"
	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/metrics"
)

type Registry struct {
	policies map[string]func(map[string]float64) dynamo.Controller
}

func NewRegistry() *Registry {
	r := &Registry{
		policies: make(map[string]func(map[string]float64) dynamo.Controller),
	}

	r.policies["none"] = func(params map[string]float64) dynamo.Controller {
		return control.NewNone()
	}
	r.policies["random"] = func(params map[string]float64) dynamo.Controller {
		p, ok := params["p"]
		if !ok {
			p = 0.1
		}
		return control.NewRandom(p, int64(params["seed"]))
	}
	r.policies["periodic"] = func(params map[string]float64) dynamo.Controller {
		every := int(params["every"])
		if every == 0 {
			every = 10
		}
		return control.NewPeriodic(every)
	}
	r.policies["energy"] = func(params map[string]float64) dynamo.Controller {
		kp, ok := params["kp"]
		if !ok {
			kp = 1.0
		}
		target, ok := params["target"]
		if !ok {
			target = 80
		}
		gravity, ok := params["gravity"]
		if !ok {
			gravity = dynamo.DefaultGravity
		}
		return control.NewEnergy(kp, params["kd"], target, gravity)
	}

	return r
}

func (r *Registry) GetPolicy(name string, params map[string]float64) (dynamo.Controller, error) {
	fn, ok := r.policies[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) ListPolicies() []string {
	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(gravity float64) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewEnergy(gravity),
		metrics.NewEnergyDrop(gravity),
		metrics.NewActionRate(),
		metrics.NewMaxHeight(),
		metrics.NewGrounded(),
	}
}
