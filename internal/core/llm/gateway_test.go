package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"taskpulse/internal/core/parse"
	"taskpulse/internal/platform/testkit"

	"github.com/openai/openai-go/v3"
	"github.com/rs/zerolog"
)

// recordSleep replaces the backoff sleep and records requested waits
func recordSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var waits []time.Duration
	testkit.Swap(t, &sleep, func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	})
	return &waits
}

func testGateway(chat func(ctx context.Context, system, user string, temperature float64) (string, error)) *Gateway {
	return &Gateway{log: zerolog.Nop(), chatFn: chat}
}

func rateLimited() error {
	req, _ := http.NewRequest(http.MethodPost, "https://provider.test/v1/chat/completions", nil)
	return &openai.Error{
		StatusCode: 429,
		Request:    req,
		Response:   &http.Response{StatusCode: 429},
	}
}

func TestExtractRetryExhaustionOnRateLimit(t *testing.T) {
	waits := recordSleep(t)

	calls := 0
	g := testGateway(func(context.Context, string, string, float64) (string, error) {
		calls++
		return "", rateLimited()
	})

	_, _, err := g.ExtractTasks(context.Background(), "do the thing", ExtractionContext{})
	if err == nil {
		t.Fatal("expected gateway failure, got nil")
	}
	var ge *GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("error type = %T", err)
	}
	if ge.Attempts != 3 || calls != 3 {
		t.Fatalf("attempts = %d calls = %d", ge.Attempts, calls)
	}
	// two backoffs between three attempts, non-decreasing
	if len(*waits) != 2 {
		t.Fatalf("waits = %v", *waits)
	}
	if (*waits)[0] != 2*time.Second || (*waits)[1] != 4*time.Second {
		t.Fatalf("waits = %v", *waits)
	}
}

func TestRetryRecoversOnSecondAttempt(t *testing.T) {
	recordSleep(t)

	calls := 0
	g := testGateway(func(context.Context, string, string, float64) (string, error) {
		calls++
		if calls == 1 {
			return "", rateLimited()
		}
		return `[{"title":"Ship release"}]`, nil
	})

	cands, tier, err := g.ExtractTasks(context.Background(), "text", ExtractionContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != parse.TierStrict || len(cands) != 1 || cands[0].Title != "Ship release" {
		t.Fatalf("tier=%s cands=%+v", tier, cands)
	}
}

func TestConnectionFailureUsesFixedBackoff(t *testing.T) {
	waits := recordSleep(t)

	g := testGateway(func(context.Context, string, string, float64) (string, error) {
		return "", &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	})

	_, _, err := g.ExtractTasks(context.Background(), "text", ExtractionContext{})
	if err == nil {
		t.Fatal("expected failure")
	}
	for _, w := range *waits {
		if w != 2*time.Second {
			t.Fatalf("connection backoff should stay fixed, waits = %v", *waits)
		}
	}
}

func TestFatalErrorDoesNotRetry(t *testing.T) {
	waits := recordSleep(t)

	calls := 0
	g := testGateway(func(context.Context, string, string, float64) (string, error) {
		calls++
		return "", errors.New("invalid api key")
	})

	_, _, err := g.ExtractTasks(context.Background(), "text", ExtractionContext{})
	var ge *GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("error type = %T", err)
	}
	if calls != 1 || ge.Attempts != 1 {
		t.Fatalf("calls = %d attempts = %d", calls, ge.Attempts)
	}
	if len(*waits) != 0 {
		t.Fatalf("no backoff expected, waits = %v", *waits)
	}
}

func TestBackoffCancellable(t *testing.T) {
	testkit.Swap(t, &sleep, func(ctx context.Context, _ time.Duration) error {
		return context.Canceled
	})

	g := testGateway(func(context.Context, string, string, float64) (string, error) {
		return "", rateLimited()
	})

	_, _, err := g.ExtractTasks(context.Background(), "text", ExtractionContext{})
	var ge *GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("error type = %T", err)
	}
	if !errors.Is(ge.Err, context.Canceled) {
		t.Fatalf("cause = %v", ge.Err)
	}
}

func TestPredictUnwrapsTasksObject(t *testing.T) {
	g := testGateway(func(context.Context, string, string, float64) (string, error) {
		return `{"tasks":[{"title":"Weekly report","confidence":0.8}]}`, nil
	})

	cands, tier, err := g.PredictTasks(context.Background(), PredictionContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != parse.TierStrict || len(cands) != 1 {
		t.Fatalf("tier=%s cands=%+v", tier, cands)
	}
	if !cands[0].HasConf || cands[0].Confidence != 0.8 {
		t.Fatalf("confidence = %+v", cands[0])
	}
}

func TestAnalyzeParsesCategories(t *testing.T) {
	g := testGateway(func(context.Context, string, string, float64) (string, error) {
		return `Here you go: {"bottlenecks":{"description":"reviews pile up on Fridays","confidence":0.76}}`, nil
	})

	got, err := g.AnalyzeTasks(context.Background(), "1. Task A\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ins, ok := got["bottlenecks"]
	if !ok || ins.Confidence != 0.76 {
		t.Fatalf("got %+v", got)
	}
}

func TestAnalyzeRejectsNonObject(t *testing.T) {
	g := testGateway(func(context.Context, string, string, float64) (string, error) {
		return "no structure here at all", nil
	})
	if _, err := g.AnalyzeTasks(context.Background(), "x"); err == nil {
		t.Fatal("expected malformed response error")
	}
}

func TestBackoffCaps(t *testing.T) {
	if d, _ := backoffFor(rateLimited(), 10); d != 60*time.Second {
		t.Fatalf("rate-limit cap = %v", d)
	}
	if d, _ := backoffFor(context.DeadlineExceeded, 10); d != 30*time.Second {
		t.Fatalf("timeout cap = %v", d)
	}
}
