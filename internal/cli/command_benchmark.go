package cli

import (
	"sort"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hasbyte1/go-passhash/hashing"
)

const benchmarkPassword = "benchmark-password"

type commandBenchmark struct {
	algorithms []string
	repeat     int
	parallel   int

	app *App
}

type benchResult struct {
	algorithm hashing.Algorithm
	perHash   time.Duration
}

func (c *commandBenchmark) setup(app *App, parent *kingpin.Application) {
	cmd := parent.Command("benchmark", "Measure hashing cost with the configured options").Alias("bench")
	cmd.Flag("algorithm", "Algorithm to benchmark (repeatable); defaults to all").
		EnumsVar(&c.algorithms, "sha1", "sha256", "sm3")
	cmd.Flag("repeat", "Number of hashes per algorithm").Default("100").IntVar(&c.repeat)
	cmd.Flag("parallel", "Number of parallel goroutines").Default("1").IntVar(&c.parallel)
	cmd.Action(c.run)
	c.app = app
}

func (c *commandBenchmark) run(*kingpin.ParseContext) error {
	if c.repeat < 1 || c.parallel < 1 {
		return errors.New("--repeat and --parallel must be positive")
	}

	h, err := c.app.hasher()
	if err != nil {
		return err
	}

	algorithms := hashing.Algorithms()
	if len(c.algorithms) > 0 {
		algorithms = algorithms[:0]
		for _, name := range c.algorithms {
			algorithms = append(algorithms, hashing.Algorithm(name))
		}
	}

	var results []benchResult

	for _, alg := range algorithms {
		c.app.log.Infof("Benchmarking %v (%v hashes, %v iterations, parallelism %v)",
			alg, c.repeat, h.Options().Iterations, c.parallel)

		perHash, err := c.runOne(h, alg)
		if err != nil {
			return errors.Wrapf(err, "benchmark of %v failed", alg)
		}

		results = append(results, benchResult{alg, perHash})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].perHash < results[j].perHash
	})

	c.app.printStdout("     %-10v %v\n", "Algorithm", "Time per hash")
	c.app.printStdout("-----------------------------------\n")

	for ndx, r := range results {
		c.app.printStdout("%3d. %-10v %v\n", ndx, r.algorithm, r.perHash)
	}

	c.app.printStdout("-----------------------------------\n")

	return nil
}

func (c *commandBenchmark) runOne(h *hashing.Hasher, alg hashing.Algorithm) (time.Duration, error) {
	var g errgroup.Group

	g.SetLimit(c.parallel)

	start := time.Now()

	for i := 0; i < c.repeat; i++ {
		g.Go(func() error {
			_, err := h.MakeWith(benchmarkPassword, string(alg))
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	return time.Since(start) / time.Duration(c.repeat), nil
}
