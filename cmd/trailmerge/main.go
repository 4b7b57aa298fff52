package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	lib "github.com/theoremus-urban-solutions/trailmerge"
	"github.com/theoremus-urban-solutions/trailmerge/config"
	"github.com/theoremus-urban-solutions/trailmerge/internal"
	"github.com/theoremus-urban-solutions/trailmerge/snap"
)

const usage = `usage:
  trailmerge [-config file] <master.gpx> <input-dir>
  trailmerge -mode strip|snap|strip-and-snap [-config file] <input-dir>
`

func main() {
	mode := flag.String("mode", "merge", "merge|strip|snap|strip-and-snap")
	configPath := flag.String("config", "", "YAML config file (default trailmerge.yml, then config.yml)")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	internal.InitLogging()
	runID := internal.StartRun()
	if err := config.LoadAppConfig(*configPath); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, *mode, flag.Args(), runID)
	stop()
	if errors.Is(err, errUsage) {
		flag.Usage()
		os.Exit(2)
	}
	if snap.IsTemporary(err) {
		log.Printf("[snap] service still failing after %d retries", config.Config.Snapping.MaxRetries)
	}
	if err != nil {
		log.Fatalf("%s: %v", *mode, err)
	}
}

var errUsage = errors.New("usage")

func run(ctx context.Context, mode string, args []string, runID string) error {
	cfg := config.Config

	want := 1
	if mode == "merge" {
		want = 2
	}
	if len(args) != want {
		return errUsage
	}

	var svc *service
	if mode != "merge" || cfg.Merge.SnapInputs {
		var err error
		if svc, err = newService(cfg.Snapping, cfg.Merge.Workers); err != nil {
			return err
		}
		defer svc.close()
	}

	r, err := lib.NewRunner(cfg, svc.snapper())
	if err != nil {
		return err
	}
	r.RunID = runID

	switch mode {
	case "merge":
		_, err = r.Merge(ctx, args[0], args[1])
	case "strip":
		_, err = r.Strip(ctx, args[0])
	case "snap":
		_, err = r.SnapDir(ctx, args[0])
	case "strip-and-snap":
		_, err = r.StripAndSnap(ctx, args[0])
	default:
		return fmt.Errorf("unknown mode %q: %w", mode, errUsage)
	}
	return err
}
