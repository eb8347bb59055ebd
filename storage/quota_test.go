// SPDX-License-Identifier: GPL-3.0-only

package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"bootstrapper-server/models"
)

func TestDailyLimitSequential(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "key-daily")

	const limit = 3
	for i := 1; i <= limit; i++ {
		allowed, err := s.IncrementCallAndCheckLimit(context.Background(), user.ID, limit)
		if err != nil {
			t.Fatalf("Call %d failed: %v", i, err)
		}
		if !allowed {
			t.Fatalf("Call %d should be allowed", i)
		}
	}

	allowed, err := s.IncrementCallAndCheckLimit(context.Background(), user.ID, limit)
	if err != nil {
		t.Fatalf("Call over limit failed: %v", err)
	}
	if allowed {
		t.Fatal("Call over the daily limit should be rejected")
	}

	// The rejected call is not counted.
	rows := usageRows(t, s, user.ID)
	if len(rows) != 1 {
		t.Fatalf("Expected exactly one usage row, got %d", len(rows))
	}
	if rows[0].CallsToday != limit {
		t.Errorf("Expected calls_today %d, got %d", limit, rows[0].CallsToday)
	}
}

func TestDailyFirstCallWithZeroLimit(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "key-zero")

	// The first call of the day is admitted even with a zero limit; it is
	// what creates the day's row.
	allowed, err := s.IncrementCallAndCheckLimit(context.Background(), user.ID, 0)
	if err != nil {
		t.Fatalf("First call failed: %v", err)
	}
	if !allowed {
		t.Fatal("First call of the day should be allowed")
	}

	allowed, err = s.IncrementCallAndCheckLimit(context.Background(), user.ID, 0)
	if err != nil {
		t.Fatalf("Second call failed: %v", err)
	}
	if allowed {
		t.Fatal("Second call with a zero limit should be rejected")
	}
}

func TestDailyLimitConcurrent(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "key-concurrent")

	const (
		limit = 10
		calls = 15
	)

	var wg sync.WaitGroup
	results := make(chan bool, calls)
	errs := make(chan error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, err := s.IncrementCallAndCheckLimit(context.Background(), user.ID, limit)
			if err != nil {
				errs <- err
				return
			}
			results <- allowed
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("Concurrent call failed: %v", err)
	}

	admitted := 0
	for allowed := range results {
		if allowed {
			admitted++
		}
	}
	if admitted != limit {
		t.Fatalf("Expected exactly %d admitted calls, got %d", limit, admitted)
	}

	rows := usageRows(t, s, user.ID)
	if len(rows) != 1 {
		t.Fatalf("Expected exactly one usage row, got %d", len(rows))
	}
	if rows[0].CallsToday != limit {
		t.Errorf("Expected calls_today %d, got %d", limit, rows[0].CallsToday)
	}
}

func TestEnsureUsageRowIdempotent(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "key-ensure")

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		if err := s.EnsureUsageRow(context.Background(), user.ID, now); err != nil {
			t.Fatalf("EnsureUsageRow %d failed: %v", i, err)
		}
	}

	rows := usageRows(t, s, user.ID)
	if len(rows) != 1 {
		t.Fatalf("Expected one row per (user, day), got %d", len(rows))
	}
	if rows[0].CallsToday != 0 || rows[0].ProjectsThisMonth != 0 {
		t.Errorf("Expected a zero-initialized row, got %+v", rows[0])
	}
}

func TestMonthlyLimitSumsAcrossDays(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "key-monthly")

	now := time.Now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	// Two projects already created earlier this month. The first of the
	// month may be today; the upsert in the quota path handles both.
	seedUsageRow(t, s, models.UsageLog{
		UserID:            user.ID,
		LogDate:           firstOfMonth.Format(models.DateLayout),
		ProjectsThisMonth: 2,
	})

	const limit = 3
	allowed, err := s.IncrementProjectAndCheckLimit(context.Background(), user.ID, limit)
	if err != nil {
		t.Fatalf("Third project failed: %v", err)
	}
	if !allowed {
		t.Fatal("Third project of the month should be allowed")
	}

	allowed, err = s.IncrementProjectAndCheckLimit(context.Background(), user.ID, limit)
	if err != nil {
		t.Fatalf("Fourth project failed: %v", err)
	}
	if allowed {
		t.Fatal("Fourth project should exceed the monthly limit")
	}
}

func TestMonthlyLimitIgnoresPreviousMonth(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "key-lastmonth")

	now := time.Now().UTC()
	lastMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	seedUsageRow(t, s, models.UsageLog{
		UserID:            user.ID,
		LogDate:           lastMonth.Format(models.DateLayout),
		ProjectsThisMonth: 50,
	})

	allowed, err := s.IncrementProjectAndCheckLimit(context.Background(), user.ID, 5)
	if err != nil {
		t.Fatalf("IncrementProjectAndCheckLimit failed: %v", err)
	}
	if !allowed {
		t.Fatal("Previous-month rows must not count against this month's limit")
	}
}

func TestMonthlyLimitConcurrent(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "key-monthly-concurrent")

	const (
		limit    = 5
		attempts = 12
	)

	var wg sync.WaitGroup
	results := make(chan bool, attempts)
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, err := s.IncrementProjectAndCheckLimit(context.Background(), user.ID, limit)
			if err != nil {
				errs <- err
				return
			}
			results <- allowed
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("Concurrent project creation failed: %v", err)
	}

	admitted := 0
	for allowed := range results {
		if allowed {
			admitted++
		}
	}
	if admitted != limit {
		t.Fatalf("Expected exactly %d admitted projects, got %d", limit, admitted)
	}

	rows := usageRows(t, s, user.ID)
	total := 0
	for _, row := range rows {
		total += row.ProjectsThisMonth
	}
	if total != limit {
		t.Errorf("Expected projects_this_month total %d, got %d", limit, total)
	}
}

func TestMonthlyLimitRejectionDoesNotMutate(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "key-nomutate")

	allowed, err := s.IncrementProjectAndCheckLimit(context.Background(), user.ID, 1)
	if err != nil || !allowed {
		t.Fatalf("First project should be allowed, got allowed=%v err=%v", allowed, err)
	}
	allowed, err = s.IncrementProjectAndCheckLimit(context.Background(), user.ID, 1)
	if err != nil {
		t.Fatalf("Second project failed: %v", err)
	}
	if allowed {
		t.Fatal("Second project should exceed the monthly limit")
	}

	rows := usageRows(t, s, user.ID)
	total := 0
	for _, row := range rows {
		total += row.ProjectsThisMonth
	}
	if total != 1 {
		t.Errorf("Rejected project must not be counted, total is %d", total)
	}
}
