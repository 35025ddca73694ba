// Package verify runs a batch reachability self-test over freshly generated
// mazes and reports pass/fail counts and generation timing.
package verify

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"escapemaze/pkg/game/i18n"
	"escapemaze/pkg/game/maze"
	"escapemaze/pkg/game/pathfind"
)

// Log is the self-test logger
var Log = logrus.New()

// Factory produces one maze per call
type Factory func() (*maze.Maze, error)

// Failure is a maze that did not pass the independent re-check, or a
// generation error.
type Failure struct {
	Index int        `json:"index"`
	Maze  *maze.Maze `json:"maze,omitempty"`
	Err   error      `json:"-"`
}

func (f Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("maze %d: %v", f.Index, f.Err)
	}
	return fmt.Sprintf("maze %d: exit %s unreachable from %s", f.Index, f.Maze.Exit, f.Maze.Start)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report summarises a self-test run
type Report struct {
	Tries    int           `json:"tries"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Repaired int           `json:"repaired"`
	Min      time.Duration `json:"min"`
	Max      time.Duration `json:"max"`
	Total    time.Duration `json:"total"`
	Failures []Failure     `json:"failures,omitempty"`
}

// Avg returns the mean generation time
func (r Report) Avg() time.Duration {
	if r.Tries == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Tries)
}

// OK reports whether every maze passed
func (r Report) OK() bool {
	return r.Failed == 0
}

// Err joins all failures, nil when the run passed
func (r Report) Err() error {
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// Run generates tries mazes with factory and re-checks each one with a
// fresh search, independent of the engine's own bookkeeping.
func Run(factory Factory, tries int, opts pathfind.Options) Report {
	rep := Report{Tries: tries}

	for i := 0; i < tries; i++ {
		began := time.Now()
		m, err := factory()
		elapsed := time.Since(began)

		rep.Total += elapsed
		if i == 0 || elapsed < rep.Min {
			rep.Min = elapsed
		}
		if elapsed > rep.Max {
			rep.Max = elapsed
		}

		if err != nil {
			rep.Failed++
			rep.Failures = append(rep.Failures, Failure{Index: i, Err: err})
			Log.WithFields(logrus.Fields{"index": i, "error": err}).Warn("generation failed")
			continue
		}
		if m.Repaired {
			rep.Repaired++
		}

		if !pathfind.IsReachable(m.Grid, m.Start, m.Exit, m.Obstacles, opts).Reachable {
			rep.Failed++
			rep.Failures = append(rep.Failures, Failure{Index: i, Maze: m})
			Log.WithFields(logrus.Fields{"index": i, "maze": m.ID}).Warn("exit unreachable")
			continue
		}
		if err := maze.Validate(m, opts); err != nil {
			rep.Failed++
			rep.Failures = append(rep.Failures, Failure{Index: i, Maze: m, Err: err})
			Log.WithFields(logrus.Fields{"index": i, "maze": m.ID, "error": err}).Warn("maze failed validation")
			continue
		}
		rep.Passed++
	}

	Log.WithFields(logrus.Fields{
		"passed": rep.Passed, "failed": rep.Failed, "repaired": rep.Repaired,
	}).Debug("self-test finished")
	return rep
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Write prints the localised report
func (r Report) Write(w io.Writer) error {
	lines := []string{
		i18n.Getf(i18n.VerifyHeader, r.Tries),
		i18n.Getf(i18n.VerifySummary, r.Passed, r.Failed, r.Repaired),
		i18n.Getf(i18n.VerifyTiming, millis(r.Min), millis(r.Max), millis(r.Avg())),
	}
	for _, f := range r.Failures {
		if f.Maze != nil && f.Err == nil {
			lines = append(lines, i18n.Getf(i18n.VerifyFailure, f.Index, f.Maze.Exit, f.Maze.Start))
			continue
		}
		lines = append(lines, f.Error())
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
