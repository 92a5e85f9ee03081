package trainingctx

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhd0331/JinanCampaign/internal/domain"
)

func doc(id string, cat domain.TrainingCategory, content string) domain.AiTrainingDoc {
	return domain.AiTrainingDoc{ID: id, Title: id, Content: content, Category: cat, IsActive: true}
}

type countingLoader struct {
	calls atomic.Int32
	docs  []domain.AiTrainingDoc
	err   error
	gate  chan struct{}
}

func (l *countingLoader) Load(ctx context.Context) ([]domain.AiTrainingDoc, error) {
	l.calls.Add(1)
	if l.gate != nil {
		<-l.gate
	}
	return l.docs, l.err
}

func TestGet_PartitionsByCategoryInStoreOrder(t *testing.T) {
	inactive := doc("gone", domain.CategoryPolicy, "삭제됨")
	inactive.IsActive = false
	l := &countingLoader{docs: []domain.AiTrainingDoc{
		doc("p2", domain.CategoryPolicy, "스마트팜"),
		doc("b1", domain.CategoryBiography, "행정 30년"),
		doc("p1", domain.CategoryPolicy, "청년 일자리"),
		doc("s1", domain.CategorySpeech, "출정식 연설"),
		doc("f1", domain.CategoryFAQ, "투표소 위치"),
		inactive,
	}}
	c := New(l.Load, time.Minute)

	b, err := c.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, b.Policies, 2)
	assert.Equal(t, "p2", b.Policies[0].ID)
	assert.Equal(t, "p1", b.Policies[1].ID)
	assert.Len(t, b.Biography, 1)
	assert.Len(t, b.Speeches, 1)
	assert.Len(t, b.FAQs, 1)
	assert.False(t, b.Empty())
	assert.False(t, b.BuiltAt.IsZero())
	assert.Equal(t, b.BuiltAt, c.BuiltAt())
}

func TestGet_CachesUntilInvalidated(t *testing.T) {
	l := &countingLoader{docs: []domain.AiTrainingDoc{doc("p1", domain.CategoryPolicy, "a")}}
	c := New(l.Load, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.Get(ctx)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, l.calls.Load(), "warm reads must not reload")

	c.Invalidate()
	assert.True(t, c.BuiltAt().IsZero())

	l.docs = append(l.docs, doc("p2", domain.CategoryPolicy, "b"))
	b, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, b.Policies, 2, "read after invalidate must see the new document")
	assert.EqualValues(t, 2, l.calls.Load())
}

func TestGet_ExpiresAfterTTL(t *testing.T) {
	l := &countingLoader{}
	c := New(l.Load, 20*time.Millisecond)
	_, err := c.Get(context.Background())
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, l.calls.Load())
}

func TestGet_ConcurrentColdReadersShareOneLoad(t *testing.T) {
	l := &countingLoader{gate: make(chan struct{}), docs: []domain.AiTrainingDoc{doc("p1", domain.CategoryPolicy, "a")}}
	c := New(l.Load, time.Minute)

	const readers = 8
	var wg sync.WaitGroup
	errs := make(chan error, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background())
			errs <- err
		}()
	}
	// Let the readers pile up on the in-flight load before releasing it.
	time.Sleep(20 * time.Millisecond)
	close(l.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, l.calls.Load())
}

func TestGet_InvalidateDuringRebuildIsNotStored(t *testing.T) {
	gate := make(chan struct{})
	var calls atomic.Int32
	load := func(ctx context.Context) ([]domain.AiTrainingDoc, error) {
		if calls.Add(1) == 1 {
			<-gate
			return []domain.AiTrainingDoc{doc("old", domain.CategoryPolicy, "old")}, nil
		}
		return []domain.AiTrainingDoc{doc("new", domain.CategoryPolicy, "new")}, nil
	}
	c := New(load, time.Minute)

	done := make(chan Bundle)
	go func() {
		b, _ := c.Get(context.Background())
		done <- b
	}()
	time.Sleep(10 * time.Millisecond)
	c.Invalidate()
	close(gate)
	stale := <-done
	require.Len(t, stale.Policies, 1)
	assert.Equal(t, "old", stale.Policies[0].ID)

	fresh, err := c.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, fresh.Policies, 1)
	assert.Equal(t, "new", fresh.Policies[0].ID)
}

func TestGet_InvalidateRacingStoreWins(t *testing.T) {
	var calls atomic.Int32
	load := func(ctx context.Context) ([]domain.AiTrainingDoc, error) {
		if calls.Add(1) == 1 {
			return []domain.AiTrainingDoc{doc("old", domain.CategoryPolicy, "old")}, nil
		}
		return []domain.AiTrainingDoc{doc("new", domain.CategoryPolicy, "new")}, nil
	}
	c := New(load, time.Minute)

	// Invalidate fires after the generation check passed but before the
	// entry is stored; it must still land after the store.
	var wg sync.WaitGroup
	c.storeHook = func() {
		started := make(chan struct{})
		wg.Add(1)
		go func() {
			defer wg.Done()
			close(started)
			c.Invalidate()
		}()
		<-started
		time.Sleep(20 * time.Millisecond)
	}

	first, err := c.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Policies, 1)
	assert.Equal(t, "old", first.Policies[0].ID)
	wg.Wait()
	c.storeHook = nil

	fresh, err := c.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, fresh.Policies, 1)
	assert.Equal(t, "new", fresh.Policies[0].ID)
	assert.EqualValues(t, 2, calls.Load())
}

func TestGet_LoaderErrorIsNotCached(t *testing.T) {
	l := &countingLoader{err: errors.New("db down")}
	c := New(l.Load, time.Minute)

	_, err := c.Get(context.Background())
	require.Error(t, err)

	l.err = nil
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, l.calls.Load())
}

func TestSimilar(t *testing.T) {
	l := &countingLoader{docs: []domain.AiTrainingDoc{
		doc("p1", domain.CategoryPolicy, "청년 창업 지원금 확대"),
		doc("p2", domain.CategoryPolicy, "스마트팜 보급"),
		doc("f1", domain.CategoryFAQ, "투표소는 어디인가요"),
	}}
	c := New(l.Load, time.Minute)

	got, err := c.Similar(context.Background(), "청년 창업", 5)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "p1", got[0].Doc.ID)
	assert.Greater(t, got[0].Score, 0.0)

	none, err := c.Similar(context.Background(), "zebra", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNew_DefaultTTL(t *testing.T) {
	c := New((&countingLoader{}).Load, 0)
	assert.Equal(t, DefaultTTL, c.ttl)
	b, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, b.Empty())
}
