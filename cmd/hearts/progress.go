package main

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// progressBar prints a row of dots as games finish, without redrawing
type progressBar struct {
	mu          sync.Mutex
	out         io.Writer
	total       int
	dotsPrinted int
	startTime   time.Time
}

const progressDots = 40

func newProgressBar(out io.Writer, total int) *progressBar {
	fmt.Fprintf(out, "Simulating %d games: ", total)
	return &progressBar{out: out, total: max(total, 1), startTime: time.Now()}
}

// Update is called after each finished game, possibly concurrently
func (p *progressBar) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	target := min(done, p.total) * progressDots / p.total
	for ; p.dotsPrinted < target; p.dotsPrinted++ {
		fmt.Fprint(p.out, ".")
	}
}

// Done finishes the line with the throughput
func (p *progressBar) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for ; p.dotsPrinted < progressDots; p.dotsPrinted++ {
		fmt.Fprint(p.out, ".")
	}
	elapsed := time.Since(p.startTime)
	fmt.Fprintf(p.out, " ✓ %d games in %.1fs (%.0f/sec)\n", p.total, elapsed.Seconds(), float64(p.total)/elapsed.Seconds())
}
