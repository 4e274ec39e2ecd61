package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	kinestex "github.com/kinestex/kinestex-go"
	"github.com/kinestex/kinestex-go/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Replay reads one line per page message from stdin and prints each typed
// event as a JSON line. Lines starting with '!' are host actions:
//
//	!reload            simulate a navigation and the following load completion
//	!exercise NAME     update the camera's current exercise
func main() {
	configPath := flag.String("config", "", "path to config file (optional; KINESTEX_* env and .env also apply)")
	feature := flag.String("feature", "main", "view to open: main, plan, workout, experience, challenge, leaderboard or camera")
	name := flag.String("name", "", "plan, workout or experience name; exercise for challenge and leaderboard")
	exercises := flag.String("exercises", "", "comma-separated camera exercises; the first is current")
	settle := flag.Duration("settle", 0, "delay between load completion and payload injection (default from bridge.settle_delay)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("kinestex-replay", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	delay := settleDelay(flag.CommandLine, *settle, cfg.Bridge.SettleDelay)

	loop := kinestex.NewLoop()
	sdk, err := kinestex.New(
		kinestex.WithDispatcher(loop),
		kinestex.WithLogger(log),
		kinestex.WithBridgeBaseURL(cfg.Bridge.BaseURL),
		kinestex.WithSettleDelay(delay),
	)
	if err != nil {
		log.Error("sdk init failed", "error", err)
		os.Exit(1)
	}
	defer sdk.Close()

	out := json.NewEncoder(os.Stdout)
	host := kinestex.Host{
		Surface: &stdoutSurface{enc: out},
		OnEvent: func(ev kinestex.Event) {
			out.Encode(map[string]any{"event": ev.Kind, "type": ev.Type, "data": ev.Data})
		},
	}
	base := kinestex.Base{APIKey: cfg.API.Key, Company: cfg.API.Company, UserID: cfg.API.UserID}

	session, err := open(sdk, *feature, *name, *exercises, base, host)
	if err != nil {
		log.Error("view construction failed", "feature", *feature, "error", err)
		os.Exit(1)
	}
	session.HandleLoadFinished()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		replay(os.Stdin, sdk, session, log)
		// Let the pending injection land before the queued shutdown.
		time.Sleep(delay)
		loop.Dispatch(cancel)
	}()

	// This goroutine is the UI thread.
	_ = loop.Run(ctx)
}

// settleDelay prefers an explicit -settle flag over the configured delay.
func settleDelay(fs *flag.FlagSet, flagged, configured time.Duration) time.Duration {
	delay := configured
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "settle" {
			delay = flagged
		}
	})
	return delay
}

func open(sdk *kinestex.SDK, feature, name, exercises string, base kinestex.Base, host kinestex.Host) (*kinestex.Session, error) {
	switch feature {
	case "main":
		return sdk.NewMainView(base, kinestex.Category{}, host)
	case "plan":
		return sdk.NewPlanView(base, name, host)
	case "workout":
		return sdk.NewWorkoutView(base, name, host)
	case "experience":
		return sdk.NewExperienceView(base, name, "", host)
	case "challenge":
		return sdk.NewChallengeView(base, name, 100, true, host)
	case "leaderboard":
		return sdk.NewLeaderboardView(base, name, "", host)
	case "camera":
		list := strings.Split(exercises, ",")
		return sdk.NewCameraView(base, list, list[0], host)
	default:
		return nil, fmt.Errorf("unknown feature %q", feature)
	}
}

func replay(r io.Reader, sdk *kinestex.SDK, s *kinestex.Session, log *slog.Logger) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
		case line == "!reload":
			s.HandleLoadStarted()
			s.HandleLoadFinished()
		case strings.HasPrefix(line, "!exercise "):
			if err := sdk.UpdateCurrentExercise(strings.TrimPrefix(line, "!exercise ")); err != nil {
				log.Warn("exercise update rejected", "error", err)
			}
		default:
			s.HandleMessage(kinestex.MessageChannel, line)
		}
	}
	if err := sc.Err(); err != nil {
		log.Error("reading input", "error", err)
	}
}

// stdoutSurface stands in for a web view: it prints what a real surface
// would load and evaluate.
type stdoutSurface struct {
	enc *json.Encoder
}

func (s *stdoutSurface) Load(_ context.Context, url string) error {
	return s.enc.Encode(map[string]string{"load": url})
}

func (s *stdoutSurface) EvaluateScript(_ context.Context, script string) error {
	return s.enc.Encode(map[string]string{"evaluate": script})
}
