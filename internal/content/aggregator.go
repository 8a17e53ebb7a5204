package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/jjenkins/boardsite/internal/model"
	"golang.org/x/sync/errgroup"
)

// Outcome is how one category fared during a refresh
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeEmpty   Outcome = "empty"
	OutcomeFailed  Outcome = "failed"
)

// CategoryResult records the fetch of a single category
type CategoryResult struct {
	Category Category
	Outcome  Outcome
	Count    int
	Err      error
	Duration time.Duration
}

// Report summarizes a refresh
type Report struct {
	Started  time.Time
	Duration time.Duration
	Results  []CategoryResult
}

// Failed returns the categories whose fetch failed
func (r Report) Failed() []CategoryResult {
	var failed []CategoryResult
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Result returns the entry for a category
func (r Report) Result(c Category) (CategoryResult, bool) {
	for _, res := range r.Results {
		if res.Category == c {
			return res, true
		}
	}
	return CategoryResult{}, false
}

// fetcher reads one category. It returns the action to apply and the
// number of rows read; zero rows means there is nothing to apply.
type fetcher struct {
	category Category
	fetch    func(ctx context.Context) (Action, int, error)
}

func listFetcher[T any](s slot[T], list func(context.Context) ([]T, error)) fetcher {
	return fetcher{
		category: s.category,
		fetch: func(ctx context.Context) (Action, int, error) {
			items, err := list(ctx)
			if err != nil {
				return nil, 0, err
			}
			return loaded[T]{slot: s, items: items}, len(items), nil
		},
	}
}

func settingFetcher[T any](c Category, repo SettingsRepository, set func(T) Action) fetcher {
	return fetcher{
		category: c,
		fetch: func(ctx context.Context) (Action, int, error) {
			raw, err := repo.Get(ctx, string(c))
			if err != nil {
				return nil, 0, err
			}
			if len(raw) == 0 || string(raw) == "null" {
				return nil, 0, nil
			}
			var v T
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, 0, fmt.Errorf("failed to decode %s: %w", c, err)
			}
			return set(v), 1, nil
		},
	}
}

func fetchers(b Backend) []fetcher {
	return []fetcher{
		listFetcher(noticesSlot, b.Notices.List),
		listFetcher(newsSlot, b.News.List),
		listFetcher(pagesSlot, b.Pages.List),
		listFetcher(carouselSlot, b.Carousel.List),
		listFetcher(widgetsSlot, b.Widgets.List),
		listFetcher(sidebarSlot, b.Sidebar.List),
		settingFetcher(CategoryTopBar, b.Settings, func(v model.TopBarConfig) Action { return topBarSet{v} }),
		settingFetcher(CategoryFooter, b.Settings, func(v model.FooterConfig) Action { return footerSet{v} }),
	}
}

// Aggregator loads every category from the backend into a Container
type Aggregator struct {
	container    *Container
	fetchers     []fetcher
	fetchTimeout time.Duration
	recorder     Recorder
	logger       *log.Logger
	errLogger    *log.Logger
}

// AggregatorOption configures an Aggregator
type AggregatorOption func(*Aggregator)

// WithFetchTimeout bounds each category fetch; zero leaves fetches unbounded
func WithFetchTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) { a.fetchTimeout = d }
}

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) AggregatorOption {
	return func(a *Aggregator) {
		if r != nil {
			a.recorder = r
		}
	}
}

// WithLoggers replaces the info and error loggers
func WithLoggers(logger, errLogger *log.Logger) AggregatorOption {
	return func(a *Aggregator) {
		a.logger = logger
		a.errLogger = errLogger
	}
}

// NewAggregator creates an Aggregator writing into container
func NewAggregator(b Backend, container *Container, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		container: container,
		fetchers:  fetchers(b),
		recorder:  noopRecorder{},
		logger:    log.New(os.Stdout, "", log.LstdFlags),
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Refresh fetches all categories concurrently and waits for every fetch to
// settle. Each successful, non-empty result is applied as soon as it
// arrives; failed or empty categories keep their current value. Failures
// are reported, never returned.
func (a *Aggregator) Refresh(ctx context.Context) (report Report) {
	report.Started = time.Now()
	report.Results = make([]CategoryResult, len(a.fetchers))

	var (
		mu       sync.Mutex
		firstErr string
	)

	a.container.Dispatch(refreshStarted{})
	defer func() {
		if r := recover(); r != nil {
			firstErr = fmt.Sprintf("refresh aborted: %v", r)
			a.errLogger.Printf("Content refresh aborted: %v", r)
		}
		report.Duration = time.Since(report.Started)
		a.container.Dispatch(refreshFinished{err: firstErr, at: time.Now()})
		a.recorder.ObserveRefresh(report.Duration, len(report.Failed()))
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range a.fetchers {
		g.Go(func() error {
			res := a.run(gctx, f)
			report.Results[i] = res
			if res.Outcome == OutcomeFailed {
				a.errLogger.Printf("Failed to load %s: %v", res.Category, res.Err)
				mu.Lock()
				if firstErr == "" {
					firstErr = fmt.Sprintf("failed to load %s: %v", res.Category, res.Err)
				}
				mu.Unlock()
			}
			// Category failures never cancel siblings
			return nil
		})
	}
	_ = g.Wait()

	a.logger.Printf("Content refresh finished in %s (%d/%d categories failed)",
		time.Since(report.Started).Round(time.Millisecond), len(report.Failed()), len(report.Results))
	return report
}

func (a *Aggregator) run(ctx context.Context, f fetcher) (res CategoryResult) {
	res.Category = f.category
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Outcome = OutcomeFailed
			res.Err = fmt.Errorf("fetcher panicked: %v", r)
		}
		res.Duration = time.Since(start)
		a.recorder.ObserveFetch(string(res.Category), string(res.Outcome), res.Duration)
	}()

	if a.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.fetchTimeout)
		defer cancel()
	}

	action, n, err := f.fetch(ctx)
	switch {
	case err != nil:
		res.Outcome = OutcomeFailed
		res.Err = err
	case n == 0 || action == nil:
		res.Outcome = OutcomeEmpty
	default:
		a.container.Dispatch(action)
		res.Outcome = OutcomeApplied
		res.Count = n
	}
	return res
}

// Run refreshes immediately and then on every tick of interval until ctx
// is done. A non-positive interval refreshes once.
func (a *Aggregator) Run(ctx context.Context, interval time.Duration) {
	a.Refresh(ctx)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Refresh(ctx)
		}
	}
}
