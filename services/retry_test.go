package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeSleeper 记录每次退避的时长，不真正等待
type fakeSleeper struct {
	delays []time.Duration
}

func (f *fakeSleeper) sleep(_ context.Context, d time.Duration) error {
	f.delays = append(f.delays, d)
	return nil
}

func TestRetryRateLimitedThenSuccess(t *testing.T) {
	sleeper := &fakeSleeper{}
	calls := 0

	result, err := retryWithBackoff(context.Background(), func() (string, error) {
		calls++
		if calls <= 2 {
			return "", errors.New("429 Too Many Requests")
		}
		return "ok", nil
	}, 3, 2*time.Second, sleeper.sleep)

	if err != nil {
		t.Fatalf("retryWithBackoff error: %v", err)
	}
	if result != "ok" {
		t.Fatalf("result=%q, want ok", result)
	}
	if calls != 3 {
		t.Fatalf("calls=%d, want 3", calls)
	}
	if len(sleeper.delays) != 2 || sleeper.delays[0] != 2*time.Second || sleeper.delays[1] != 4*time.Second {
		t.Fatalf("delays=%v, want [2s 4s]", sleeper.delays)
	}
}

func TestRetryNonRateLimitErrorFailsFast(t *testing.T) {
	sleeper := &fakeSleeper{}
	calls := 0
	wantErr := errors.New("invalid request payload")

	_, err := retryWithBackoff(context.Background(), func() (string, error) {
		calls++
		return "", wantErr
	}, 3, 2*time.Second, sleeper.sleep)

	if !errors.Is(err, wantErr) {
		t.Fatalf("err=%v, want %v", err, wantErr)
	}
	if calls != 1 {
		t.Fatalf("calls=%d, want 1", calls)
	}
	if len(sleeper.delays) != 0 {
		t.Fatalf("delays=%v, want none", sleeper.delays)
	}
}

func TestRetryExhaustionReturnsLastError(t *testing.T) {
	sleeper := &fakeSleeper{}
	calls := 0

	_, err := retryWithBackoff(context.Background(), func() (string, error) {
		calls++
		return "", errors.New("RESOURCE_EXHAUSTED: quota exceeded")
	}, 3, time.Second, sleeper.sleep)

	if err == nil || !isRateLimitError(err) {
		t.Fatalf("err=%v, want rate limit error", err)
	}
	if calls != 3 {
		t.Fatalf("calls=%d, want 3", calls)
	}
	// 最后一次失败后不再等待
	if len(sleeper.delays) != 2 {
		t.Fatalf("delays=%v, want 2 entries", sleeper.delays)
	}
}

func TestIsRateLimitError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{errors.New("429 Too Many Requests"), true},
		{errors.New("googleapi: Error 429"), true},
		{errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"), true},
		{errors.New("Too Many Requests"), true},
		{errors.New("connection refused"), false},
		{nil, false},
	}
	for _, c := range cases {
		if got := isRateLimitError(c.err); got != c.want {
			t.Errorf("isRateLimitError(%v)=%v, want %v", c.err, got, c.want)
		}
	}
}
