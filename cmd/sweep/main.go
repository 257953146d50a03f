package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/mroldan747/ai50/internal/minesweeper"
	"github.com/mroldan747/ai50/internal/store"
)

var log = logrus.New()

var (
	width     int
	height    int
	mineCount int
	games     int
	workers   int
	seed      uint64
	debug     bool
	dbPath    string
	logPath   string
	runName   string
)

func init() {
	flag.IntVar(&width, "width", 16, "board width")
	flag.IntVar(&height, "height", 16, "board height")
	flag.IntVar(&mineCount, "mines", 40, "mine count")
	flag.IntVar(&games, "games", 100, "number of games to play")
	flag.IntVar(&workers, "workers", 4, "number of concurrent workers")
	flag.Uint64Var(&seed, "seed", 0, "rng seed (0 picks a random one)")
	flag.BoolVar(&debug, "debug", false, "log every finished game")
	flag.StringVar(&dbPath, "db", "", "sqlite file to record the run into")
	flag.StringVar(&logPath, "log", "", "rotating log file path")
	flag.StringVar(&runName, "run", "", "name to store the run under (defaults to the start time)")
}

func setupLogging() {
	log.SetLevel(logrus.InfoLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if logPath == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to create rotating log file: ", err)
	}
	log.AddHook(hook)
}

// Tally is the recorded outcome of one benchmark run.
type Tally struct {
	Width     int
	Height    int
	MineCount int
	Games     int
	Wins      int
	Guesses   int
	Steps     int
	StartedAt time.Time
	Duration  time.Duration
}

// playOne lets the agent play a fresh board to the end, flagging proven
// mines, revealing proven safe cells and guessing when it must.
func playOne(r *rand.Rand) (won bool, guesses int, steps int, err error) {
	game, err := minesweeper.NewGame(height, width, mineCount, r)
	if err != nil {
		return false, 0, 0, err
	}
	limit := 2 * height * width
	for !game.Over() && steps < limit {
		hint, err := game.Step(r)
		if err != nil {
			return false, guesses, steps, err
		}
		if hint == nil {
			break
		}
		steps++
		if hint.IsGuess {
			guesses++
		}
	}
	return game.Won, guesses, steps, nil
}

func record(tally Tally) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := store.New(db, "runs")
	if err != nil {
		return err
	}
	if runName == "" {
		runName = tally.StartedAt.UTC().Format(time.RFC3339)
	}
	return runs.Set(runName, tally)
}

func main() {
	flag.Parse()
	setupLogging()

	if seed == 0 {
		seed = new(maphash.Hash).Sum64()
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	log.WithFields(logrus.Fields{
		"width":   width,
		"height":  height,
		"mines":   mineCount,
		"games":   games,
		"workers": workers,
		"seed":    seed,
	}).Info("starting sweep")

	startedAt := time.Now()

	var (
		played  atomic.Int64
		wins    atomic.Int64
		guesses atomic.Int64
		steps   atomic.Int64
	)

	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		r := rand.New(rand.NewPCG(seed, uint64(i)))
		g.Go(func() error {
			for {
				select {
				case <-gCtx.Done():
					return gCtx.Err()
				default:
				}
				n := played.Add(1)
				if n > int64(games) {
					return nil
				}
				won, gg, ss, err := playOne(r)
				if err != nil {
					return fmt.Errorf("game %d: %w", n, err)
				}
				if won {
					wins.Add(1)
				}
				guesses.Add(int64(gg))
				steps.Add(int64(ss))
				log.WithFields(logrus.Fields{
					"game":    n,
					"won":     won,
					"guesses": gg,
					"steps":   ss,
				}).Debug("game finished")
			}
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("sweep failed: ", err)
	}

	tally := Tally{
		Width:     width,
		Height:    height,
		MineCount: mineCount,
		Games:     games,
		Wins:      int(wins.Load()),
		Guesses:   int(guesses.Load()),
		Steps:     int(steps.Load()),
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
	}

	log.WithFields(logrus.Fields{
		"games":    tally.Games,
		"wins":     tally.Wins,
		"win_rate": fmt.Sprintf("%.1f%%", 100*float64(tally.Wins)/float64(tally.Games)),
		"guesses":  tally.Guesses,
		"duration": tally.Duration.Round(time.Millisecond).String(),
	}).Info("sweep complete")

	if dbPath != "" {
		if err := record(tally); err != nil {
			log.Fatal("unable to record run: ", err)
		}
	}
}
