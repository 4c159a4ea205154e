// Command wavefront loads a scenario, plans one step with the wavefront
// planner and prints the move.
//
// Usage:
//
//	wavefront -scenario scenario/testdata/wall.yaml [-dump] [-trace runs.db] [-serve :8080]
//
// With -serve the frames of the finished run stay available over WebSocket
// until interrupted; each viewer that connects gets a replay of the run.
//
// Exit codes: 0 move found, 1 runtime error, 2 usage error, 3 no path.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/wavefront/reach"
	"github.com/katalvlaran/wavefront/render"
	"github.com/katalvlaran/wavefront/scenario"
	"github.com/katalvlaran/wavefront/stream"
	"github.com/katalvlaran/wavefront/trace"
	"github.com/katalvlaran/wavefront/wavefront"
)

const (
	exitOK     = 0
	exitErr    = 1
	exitUsage  = 2
	exitNoPath = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wavefront", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		scenarioPath = fs.String("scenario", "", "path to a .yaml or .json scenario")
		dump         = fs.Bool("dump", false, "print every propagation frame to stdout")
		tracePath    = fs.String("trace", "", "record frames into this sqlite database (optional)")
		serveAddr    = fs.String("serve", "", "after planning, replay the run's frames over websocket at this address until ^C (optional)")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	logger := log.New(stderr, "wavefront: ", log.LstdFlags)

	if *scenarioPath == "" {
		fmt.Fprintln(stderr, "missing -scenario")
		fs.Usage()
		return exitUsage
	}

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		logger.Printf("load scenario: %v", err)
		return exitErr
	}
	grid, err := sc.Build()
	if err != nil {
		logger.Printf("build grid: %v", err)
		return exitErr
	}

	var observers multi
	if *dump {
		observers = append(observers, render.NewWriter(stdout))
	}

	var rec *trace.Recorder
	if *tracePath != "" {
		rec, err = trace.Open(*tracePath)
		if err != nil {
			logger.Printf("open trace: %v", err)
			return exitErr
		}
		defer rec.Close()
		id, err := rec.Begin(label(sc, *scenarioPath), grid)
		if err != nil {
			logger.Printf("begin trace: %v", err)
			return exitErr
		}
		logger.Printf("recording run %d into %s", id, *tracePath)
		observers = append(observers, rec)
	}

	var hub *stream.Hub
	if *serveAddr != "" {
		hub = stream.NewHub(logger)
		observers = append(observers, hub)
	}

	start := time.Now()
	move := grid.Propagate(observers.observer())
	elapsed := time.Since(start)

	if rec != nil {
		if err := rec.Finish(move); err != nil {
			logger.Printf("trace: %v", err)
		}
	}

	fmt.Fprintln(stdout, move)
	code := exitOK
	if move == wavefront.NoPath {
		fmt.Fprintln(stdout, reach.Explain(grid, move))
		code = exitNoPath
	}
	logger.Printf("propagated %s in %s", label(sc, *scenarioPath), elapsed)

	if hub != nil {
		if err := serve(logger, *serveAddr, hub); err != nil {
			logger.Printf("serve: %v", err)
			return exitErr
		}
	}
	return code
}

func label(sc scenario.Scenario, path string) string {
	if sc.Name != "" {
		return sc.Name
	}
	return path
}

// multi fans one observer call out to several observers in order.
type multi []wavefront.Observer

func (m multi) Wave(v wavefront.View) {
	for _, o := range m {
		o.Wave(v)
	}
}

// observer returns nil for an empty list so Propagate skips callbacks.
func (m multi) observer() wavefront.Observer {
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	}
	return m
}

// serve exposes hub at /ws until SIGINT or SIGTERM.
func serve(logger *log.Logger, addr string, hub *stream.Hub) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.Handler())

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	logger.Printf("replaying frames on ws://%s/ws (^C to stop)", ln.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
