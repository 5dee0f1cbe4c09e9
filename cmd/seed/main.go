// Package main provides a CLI that fills a running goUserRegistry service
// with random users through its HTTP API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chybatronik/goUserRegistry/internal/logging"
	"github.com/chybatronik/goUserRegistry/internal/types"
	"github.com/chybatronik/goUserRegistry/internal/validation"
)

var (
	namePrefixes = []string{"alex", "maria", "john", "sarah", "mike", "emma", "david", "lisa", "an", "binh"}
	genders      = []string{"male", "female", "other"}
)

// seedConfig holds the command line options
type seedConfig struct {
	BaseURL string
	Count   int
	Seed    uint64
	Timeout time.Duration
}

// seedResult counts the outcome of a run
type seedResult struct {
	Created  int
	Rejected int
}

func main() {
	cfg := seedConfig{}
	var logLevel string

	flag.StringVar(&cfg.BaseURL, "url", "http://localhost:8080", "base URL of the running service")
	flag.IntVar(&cfg.Count, "count", 100, "number of users to create")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "random seed for reproducibility (0 = random)")
	flag.DurationVar(&cfg.Timeout, "timeout", 5*time.Second, "per-request timeout")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger := logging.NewLogger(os.Stderr, logLevel, logging.FormatText, "goUserRegistry-seed", "dev")

	if cfg.Count < 1 {
		fmt.Fprintf(os.Stderr, "Error: -count must be positive, got %d\n", cfg.Count)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: cfg.Timeout}
	result, err := run(ctx, client, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("seeding completed", "created", result.Created, "rejected", result.Rejected)
}

// run posts cfg.Count random users to the service. Rejections such as
// duplicate usernames are counted, transport failures abort the run.
func run(ctx context.Context, client *http.Client, cfg seedConfig, logger *logging.Logger) (seedResult, error) {
	var result seedResult

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	endpoint := strings.TrimRight(cfg.BaseURL, "/") + "/users"
	today := time.Now()

	logger.Info("seeding users", "url", endpoint, "count", cfg.Count, "seed", seed)

	for i := 1; i <= cfg.Count; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		input := randomUser(rng, i, today)
		status, err := postUser(ctx, client, endpoint, input)
		if err != nil {
			return result, fmt.Errorf("create user %q: %w", input.Username, err)
		}

		if status == http.StatusCreated {
			result.Created++
		} else {
			result.Rejected++
			logger.Warn("user rejected", logging.FieldUsername, input.Username, logging.FieldHTTPStatus, status)
		}

		if i%100 == 0 {
			logger.Info("progress", "sent", i)
		}
	}

	return result, nil
}

// randomUser builds a valid registration with a birth date between 18 and
// 80 years before today.
func randomUser(rng *rand.Rand, n int, today time.Time) types.CreateUserInput {
	daysBack := 18*365 + rng.IntN(62*365)
	dob := today.AddDate(0, 0, -daysBack)

	return types.CreateUserInput{
		Username: fmt.Sprintf("%s_%d", namePrefixes[rng.IntN(len(namePrefixes))], n),
		Gender:   genders[rng.IntN(len(genders))],
		DOB:      dob.Format(validation.DateLayout),
	}
}

func postUser(ctx context.Context, client *http.Client, endpoint string, input types.CreateUserInput) (int, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
