package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marben/mandex/internal/cli"
)

// main is the entry point for the explorer server.
// Every browser connected to it views and navigates the same engine.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	opts := cli.Defaults()
	opts.Width, opts.Height = 640, 480
	opts.Register(flag.CommandLine)
	addr := flag.String("addr", ":8080", "http listen address")
	static := flag.String("static", "./static", "directory with index.html, wasm_exec.js and main.wasm")
	fps := flag.Int("fps", 10, "frames pushed to each viewer per second")
	flag.Parse()

	if *fps <= 0 {
		return fmt.Errorf("-fps must be positive, got %d", *fps)
	}
	opts.SetupLogging()

	engine, err := opts.NewEngine()
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := engine.Run(opts.Viewport()); err != nil {
		return fmt.Errorf("engine.Run: %w", err)
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := newViewers(engine, time.Second/time.Duration(*fps))
	srv := webServer(ctx, *addr, *static, v)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	log.Printf("explorer server waiting for websocket viewers")
	return g.Wait()
}
