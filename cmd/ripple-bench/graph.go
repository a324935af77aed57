package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/ripplekit/ripple"
	"github.com/rs/zerolog/log"
)

// intReader is satisfied by both signals and memos, so layers can
// stack on either.
type intReader interface {
	Get() int
}

type benchGraph struct {
	rt      *ripple.Runtime
	sources []ripple.RwSignal[int]
	layers  [][]ripple.Memo[int]
	counter *int64
}

type caseResult struct {
	c        benchCase
	sum      int
	count    int64
	duration time.Duration
	metrics  *tachymeter.Metrics
}

func runCase(c benchCase, repeats int) (caseResult, error) {
	var buildErr error
	rt := ripple.New(func(err error) {
		buildErr = err
	})
	defer rt.Dispose()

	graph := makeGraph(rt, c)

	// warm up once so lazy memos are settled before timing
	runGraph(graph, c, nil)
	if buildErr != nil {
		return caseResult{}, buildErr
	}

	best := caseResult{c: c, duration: time.Hour}
	for i := 0; i < repeats; i++ {
		*graph.counter = 0
		tach := tachymeter.New(&tachymeter.Config{Size: c.Iterations})

		start := time.Now()
		sum := runGraph(graph, c, tach)
		duration := time.Since(start)

		if duration < best.duration {
			best.sum = sum
			best.count = *graph.counter
			best.duration = duration
			best.metrics = tach.Calc()
		}
	}
	if buildErr != nil {
		return caseResult{}, buildErr
	}

	log.Debug().
		Str("case", c.Name).
		Int("sum", best.sum).
		Int64("updates", best.count).
		Dur("best", best.duration).
		Msg("case done")
	return best, nil
}

func makeGraph(rt *ripple.Runtime, c benchCase) *benchGraph {
	counter := new(int64)
	sources := make([]ripple.RwSignal[int], c.Width)
	prev := make([]intReader, c.Width)
	for i := range sources {
		sources[i] = ripple.CreateRWSignal(rt, i)
		prev[i] = sources[i]
	}

	random := rand.New(rand.NewSource(0))
	layers := make([][]ripple.Memo[int], c.Layers-1)
	for l := range layers {
		layers[l] = makeLayer(rt, prev, c, counter, random)
		next := make([]intReader, len(layers[l]))
		for i := range layers[l] {
			next[i] = layers[l][i]
		}
		prev = next
	}

	return &benchGraph{
		rt:      rt,
		sources: sources,
		layers:  layers,
		counter: counter,
	}
}

func makeLayer(rt *ripple.Runtime, sources []intReader, c benchCase, counter *int64, random *rand.Rand) []ripple.Memo[int] {
	row := make([]ripple.Memo[int], len(sources))
	for myDex := range sources {
		mySources := make([]intReader, 0, c.NSources)
		for sourceDex := 0; sourceDex < c.NSources; sourceDex++ {
			mySources = append(mySources, sources[(myDex+sourceDex)%len(sources)])
		}

		static := random.Float64() < c.StaticFraction
		if static {
			row[myDex] = ripple.CreateMemo(rt, func() int {
				*counter++
				sum := 0
				for _, src := range mySources {
					sum += src.Get()
				}
				return sum
			})
			continue
		}

		// dynamic node, drops one source depending on the first value
		first := mySources[0]
		tail := mySources[1:]
		row[myDex] = ripple.CreateMemo(rt, func() int {
			*counter++
			sum := first.Get()
			shouldDrop := sum&0x1 > 0
			dropDex := 0
			if len(tail) > 0 {
				dropDex = sum % len(tail)
			}
			for i, src := range tail {
				if shouldDrop && i == dropDex {
					continue
				}
				sum += src.Get()
			}
			return sum
		})
	}
	return row
}

func runGraph(g *benchGraph, c benchCase, tach *tachymeter.Tachymeter) int {
	random := rand.New(rand.NewSource(0))
	leaves := lastRow(g)
	skipCount := int(math.Round(float64(len(leaves)) * (1 - c.ReadFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	for i := 0; i < c.Iterations; i++ {
		start := time.Now()
		sourceDex := i % len(g.sources)
		g.sources[sourceDex].Set(i + sourceDex)
		for _, leaf := range readLeaves {
			leaf.Get()
		}
		if tach != nil {
			tach.AddTime(time.Since(start))
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.Get()
	}
	return sum
}

func lastRow(g *benchGraph) []ripple.Memo[int] {
	if len(g.layers) == 0 {
		return nil
	}
	return g.layers[len(g.layers)-1]
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < rmCount && len(out) > 0; i++ {
		rmDex := random.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
