package agent

import (
	"errors"
	"fmt"

	"silly-billy/internal/commands"
	"silly-billy/internal/logger"
	"silly-billy/internal/sim"
	"silly-billy/internal/tuning"
)

// ErrQueueFull is returned when the frame loop has not drained earlier actions yet.
var ErrQueueFull = errors.New("simulation busy, try again")

// Poster queues commands for the frame goroutine. *sim.Simulation implements it.
type Poster interface {
	Post(cmd sim.Command) bool
}

// PresetFunc switches the named preset. It runs on the frame goroutine.
type PresetFunc func(s *sim.Simulation, name string) error

// RegisterSimHandlers registers the rag-doll actions, preset, balls and run_cmd.
// Handlers run on the agent goroutine, so every one of them posts its work to p; errors found
// on the frame goroutine are logged to log.
func RegisterSimHandlers(a *Agent, p Poster, preset PresetFunc, reg *commands.Registry, log *logger.Logger) {
	post := func(cmd sim.Command) error {
		if !p.Post(cmd) {
			return ErrQueueFull
		}
		return nil
	}

	for _, name := range []string{"reset", "throw", "punch", "kick", "squeeze"} {
		a.RegisterHandler(name, func(map[string]interface{}) error {
			return post(func(s *sim.Simulation) {
				if err := s.Controller.Do(name); err != nil {
					log.Log(err.Error())
				}
			})
		})
	}

	a.RegisterHandler("preset", func(payload map[string]interface{}) error {
		name, _ := payload["name"].(string)
		if name == "" {
			return fmt.Errorf("missing name")
		}
		return post(func(s *sim.Simulation) {
			if err := preset(s, name); err != nil {
				log.Log(err.Error())
			}
		})
	})

	a.RegisterHandler("balls", func(payload map[string]interface{}) error {
		n, ok := payload["count"].(float64)
		if !ok {
			return fmt.Errorf("missing count")
		}
		count := int(n)
		if count < 0 || count > tuning.MaxBalls {
			return fmt.Errorf("count %d outside [0,%d]", count, tuning.MaxBalls)
		}
		return post(func(s *sim.Simulation) {
			s.SpawnBalls(count)
		})
	})

	a.RegisterHandler("run_cmd", func(payload map[string]interface{}) error {
		args, ok := payload["args"].([]interface{})
		if !ok || len(args) == 0 {
			return fmt.Errorf("missing or empty args")
		}
		strs := make([]string, 0, len(args))
		for _, v := range args {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("args must be strings")
			}
			strs = append(strs, s)
		}
		if !reg.Has(strs[0]) {
			return fmt.Errorf("unknown command: %s", strs[0])
		}
		return post(func(*sim.Simulation) {
			if err := reg.Execute(strs); err != nil {
				log.Log(err.Error())
			}
		})
	})
}
