package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

type options struct {
	baseURL    string
	workers    int
	duration   time.Duration
	candidates int
}

type sample struct {
	endpoint string
	latency  time.Duration
	failed   bool
}

// tally is owned by a single worker until the phase ends.
type tally map[string]*series

type series struct {
	failures  int64
	latencies []time.Duration
}

func (t tally) record(s sample) {
	ser, ok := t[s.endpoint]
	if !ok {
		ser = &series{}
		t[s.endpoint] = ser
	}
	if s.failed {
		ser.failures++
	}
	ser.latencies = append(ser.latencies, s.latency)
}

func (t tally) merge(other tally) {
	for ep, o := range other {
		ser, ok := t[ep]
		if !ok {
			t[ep] = o
			continue
		}
		ser.failures += o.failures
		ser.latencies = append(ser.latencies, o.latencies...)
	}
}

type phase struct {
	title string
	step  func(c *client, rng *rand.Rand) sample
}

type client struct {
	base       string
	http       *http.Client
	candidates int
}

func newClient(base string, candidates int) *client {
	return &client{
		base:       strings.TrimRight(base, "/"),
		candidates: candidates,
		http: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 256,
				IdleConnTimeout:     30 * time.Second,
				DialContext:         (&net.Dialer{Timeout: 2 * time.Second}).DialContext,
			},
		},
	}
}

// loadtest drives the local UI of a running livevote daemon. It never
// confirms a vote, so the device stays unlocked.
func main() {
	var opts options
	pflag.StringVar(&opts.baseURL, "url", "http://127.0.0.1:18090", "Base URL of the livevote local UI")
	pflag.IntVar(&opts.workers, "workers", 50, "Concurrent workers")
	pflag.DurationVar(&opts.duration, "duration", 10*time.Second, "Duration of each phase")
	pflag.IntVar(&opts.candidates, "candidates", 5, "Highest candidate id used for select requests")
	pflag.Parse()

	c := newClient(opts.baseURL, opts.candidates)

	fmt.Printf("livevote load test: %d workers, %s per phase, target %s\n", opts.workers, opts.duration, c.base)
	if err := c.awaitReady(30, 200*time.Millisecond); err != nil {
		fmt.Fprintln(os.Stderr, "daemon not ready:", err)
		os.Exit(1)
	}

	phases := []phase{
		{"ballot reads", func(c *client, _ *rand.Rand) sample { return c.get("/ballot") }},
		{"admin reads", func(c *client, rng *rand.Rand) sample {
			paths := [...]string{"/admin/candidates", "/admin/candidates", "/admin/votes", "/admin/results"}
			return c.get(paths[rng.Intn(len(paths))])
		}},
		{"ballot reads with select/cancel", func(c *client, rng *rand.Rand) sample {
			if rng.Intn(5) == 0 {
				return c.selectThenCancel(rng.Intn(c.candidates) + 1)
			}
			return c.get("/ballot")
		}},
	}

	for i, p := range phases {
		fmt.Printf("\n[%d/%d] %s\n", i+1, len(phases), p.title)
		report(drive(c, p, opts.workers, opts.duration), opts.duration)
	}
}

func (c *client) awaitReady(attempts int, pause time.Duration) error {
	var err error
	for range attempts {
		var resp *http.Response
		if resp, err = c.http.Get(c.base + "/health"); err == nil {
			drain(resp)
			return nil
		}
		time.Sleep(pause)
	}
	return err
}

func drive(c *client, p phase, workers int, d time.Duration) tally {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		total = tally{}
	)
	for w := range workers {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			own := tally{}
			for ctx.Err() == nil {
				own.record(p.step(c, rng))
			}
			mu.Lock()
			total.merge(own)
			mu.Unlock()
		}(time.Now().UnixNano() + int64(w))
	}
	wg.Wait()
	return total
}

func report(t tally, d time.Duration) {
	names := make([]string, 0, len(t))
	for ep := range t {
		names = append(names, ep)
	}
	slices.Sort(names)

	var requests, failures int64
	fmt.Printf("  %-28s %9s %6s %9s %9s %9s\n", "endpoint", "requests", "fail", "p50", "p95", "p99")
	for _, ep := range names {
		ser := t[ep]
		slices.Sort(ser.latencies)
		n := int64(len(ser.latencies))
		requests += n
		failures += ser.failures
		fmt.Printf("  %-28s %9s %6d %9s %9s %9s\n", ep, humanize.Comma(n), ser.failures,
			quantile(ser.latencies, 0.50), quantile(ser.latencies, 0.95), quantile(ser.latencies, 0.99))
	}
	if requests == 0 {
		fmt.Println("  no requests completed")
		return
	}
	fmt.Printf("  %s requests, %s failed, %s req/s\n",
		humanize.Comma(requests), humanize.Comma(failures), humanize.Comma(int64(float64(requests)/d.Seconds())))
}

func (c *client) get(path string) sample {
	start := time.Now()
	resp, err := c.http.Get(c.base + path)
	s := sample{endpoint: "GET " + path, latency: time.Since(start), failed: err != nil}
	if err == nil {
		s.failed = resp.StatusCode != http.StatusOK
		drain(resp)
	}
	return s
}

// selectThenCancel opens and dismisses the confirmation prompt. An unknown
// id answers 404 and still counts as a success.
func (c *client) selectThenCancel(id int) sample {
	start := time.Now()
	s := sample{endpoint: "POST /ballot/select+cancel", failed: true}

	resp, err := c.http.Post(fmt.Sprintf("%s/ballot/select?id=%d", c.base, id), "", nil)
	if err != nil {
		s.latency = time.Since(start)
		return s
	}
	selected := resp.StatusCode
	drain(resp)

	resp, err = c.http.Post(c.base+"/ballot/cancel", "", nil)
	s.latency = time.Since(start)
	if err != nil {
		return s
	}
	drain(resp)
	s.failed = (selected != http.StatusOK && selected != http.StatusNotFound) || resp.StatusCode != http.StatusOK
	return s
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func quantile(sorted []time.Duration, q float64) string {
	if len(sorted) == 0 {
		return "-"
	}
	d := sorted[min(int(float64(len(sorted))*q), len(sorted)-1)]
	return d.Round(10 * time.Microsecond).String()
}
