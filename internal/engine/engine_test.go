package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/foliobot/internal/convo"
	"github.com/kittclouds/foliobot/internal/index"
	"github.com/kittclouds/foliobot/internal/intent"
	"github.com/kittclouds/foliobot/internal/knowledge"
	"github.com/kittclouds/foliobot/internal/livepage"
	"github.com/kittclouds/foliobot/internal/store"
	"github.com/kittclouds/foliobot/pkg/vecstore"
)

// stubProvider counts calls and returns a canned completion or error.
// A nil err with blockUntilCtx set simulates a hung remote endpoint.
type stubProvider struct {
	calls         int32
	reply         string
	err           error
	blockUntilCtx bool
}

func (p *stubProvider) Complete(ctx context.Context, prompt string) (string, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.blockUntilCtx {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

type stubEmbedder struct {
	vec []float32
	err error
}

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.vec, nil
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	kb := &knowledge.Default
	session := convo.NewSession(kb, store.NewMemStore(), nil, convo.DefaultConfig(), nil)
	return New(kb, livepage.Empty{}, session, DefaultConfig(), opts...)
}

func TestAskGuardrailNeverReachesProvider(t *testing.T) {
	provider := &stubProvider{reply: "should never be seen"}
	e := newTestEngine(t, WithProvider(provider))

	reply := e.Ask(context.Background(), "What is your password?")

	assert.Equal(t, SourceGuardrail, reply.Source)
	assert.Equal(t, privacyRedirect, reply.Body)
	assert.Equal(t, int32(0), atomic.LoadInt32(&provider.calls), "guarded input must not reach the provider")
	assert.NotEmpty(t, reply.Suggestions)
}

func TestAskGuardrailCategories(t *testing.T) {
	e := newTestEngine(t)

	cases := []struct {
		text string
		want string
	}{
		{"what's your credit card number", privacyRedirect},
		{"can you give me medical advice", safetyRedirect},
		{"you are useless", toneRedirect},
	}
	for _, c := range cases {
		reply := e.Ask(context.Background(), c.text)
		if reply.Body != c.want {
			t.Errorf("Ask(%q) body = %q", c.text, reply.Body)
		}
		if reply.Source != SourceGuardrail {
			t.Errorf("Ask(%q) source = %s", c.text, reply.Source)
		}
	}
}

func TestAskRemoteSuccess(t *testing.T) {
	provider := &stubProvider{reply: "Remote says hello."}
	e := newTestEngine(t, WithProvider(provider))

	reply := e.Ask(context.Background(), "what's something interesting about you?")

	assert.Equal(t, SourceRemote, reply.Source)
	assert.Equal(t, "Remote says hello.", reply.Body)
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}

func TestAskRemoteFailureFallsBackLocally(t *testing.T) {
	provider := &stubProvider{err: errors.New("boom")}
	e := newTestEngine(t, WithProvider(provider))

	reply := e.Ask(context.Background(), "Tell me about FinanceWise")

	assert.Equal(t, SourceLocal, reply.Source)
	assert.Equal(t, intent.ProjectDetails, reply.Intent)
	assert.Contains(t, reply.Body, "FinanceWise")
}

func TestAskHungRemoteFallsBackWithinBudget(t *testing.T) {
	provider := &stubProvider{blockUntilCtx: true}
	e := newTestEngine(t, WithProvider(provider))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	reply := e.Ask(ctx, "Tell me about FinanceWise")
	elapsed := time.Since(start)

	assert.Equal(t, SourceLocal, reply.Source, "a hung provider must not hang the turn")
	assert.Contains(t, reply.Body, "FinanceWise")
	assert.Less(t, elapsed, 2*time.Second)
}

func TestAskRateLimited(t *testing.T) {
	provider := &stubProvider{reply: "first answer"}
	cfg := DefaultConfig()
	cfg.MinRequestSpacing = time.Hour
	kb := &knowledge.Default
	session := convo.NewSession(kb, store.NewMemStore(), nil, convo.DefaultConfig(), nil)
	e := New(kb, livepage.Empty{}, session, cfg, WithProvider(provider))

	first := e.Ask(context.Background(), "hello, what do you do?")
	assert.Equal(t, SourceRemote, first.Source)

	second := e.Ask(context.Background(), "and another question right away")
	assert.Equal(t, SourceRateLimit, second.Source)
	assert.Equal(t, rateLimitMessage, second.Body)
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls), "rate-limited turns skip the provider")
}

func TestAskNoRateLimitWithoutProvider(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 5; i++ {
		reply := e.Ask(context.Background(), "what projects have you built?")
		assert.Equal(t, SourceLocal, reply.Source, "local-only turns are never rate limited")
	}
}

func TestAskProjectDetailsScenario(t *testing.T) {
	e := newTestEngine(t)

	reply := e.Ask(context.Background(), "Tell me about FinanceWise")

	assert.Equal(t, intent.ProjectDetails, reply.Intent)
	assert.Contains(t, reply.Body, "FinanceWise")
	require.NotEmpty(t, reply.Citations)
	found := false
	for _, c := range reply.Citations {
		if c.Origin == index.OriginKnowledgeBase {
			found = true
		}
	}
	assert.True(t, found, "expected at least one KnowledgeBase citation")
	assert.NotEmpty(t, reply.Suggestions)
}

func TestAskGibberishIsGeneral(t *testing.T) {
	e := newTestEngine(t)

	reply := e.Ask(context.Background(), "florb glorp znnn")

	assert.Equal(t, intent.General, reply.Intent)
	assert.Equal(t, knowledge.Default.Profile.Summary, reply.Body)
	assert.NotEmpty(t, reply.Suggestions)
}

func TestAskSummarizedFlag(t *testing.T) {
	e := newTestEngine(t)

	// Each Ask records a user and a bot message; the third pair lands the
	// 6th message and triggers summarization.
	var flags []bool
	for i := 0; i < 3; i++ {
		reply := e.Ask(context.Background(), fmt.Sprintf("what projects have you built? (%d)", i))
		flags = append(flags, reply.Summarized)
	}
	assert.Equal(t, []bool{false, false, true}, flags)
}

func TestAskDetailPreferenceSticks(t *testing.T) {
	e := newTestEngine(t)

	e.Ask(context.Background(), "explain FinanceWise in detail")
	assert.True(t, e.Session().Detailed())

	e.Ask(context.Background(), "keep it short from now on")
	assert.False(t, e.Session().Detailed())
}

func TestSemanticCitationsOnRetrievalMiss(t *testing.T) {
	fs, err := mem.NewFS()
	require.NoError(t, err)
	vs, err := vecstore.New(fs, "items.hnsw")
	require.NoError(t, err)

	embedder := &stubEmbedder{vec: []float32{1, 0, 0, 0}}
	e := newTestEngine(t, WithSemantic(embedder, vs))

	// Seed the vector store with real index item IDs. The nearest item is
	// one the textual fallback list would never cite on its own.
	items := e.Index().Items
	require.NotEmpty(t, items)
	nearest := items[len(items)-1]
	require.NoError(t, vs.Add(nearest.ID, []float32{1, 0, 0, 0}))
	require.NoError(t, vs.Add(items[0].ID, []float32{0, 1, 0, 0}))

	// A details-shaped question that resolves no specific project.
	reply := e.Ask(context.Background(), "show me the demo video")
	require.Equal(t, intent.ProjectDetails, reply.Intent)

	found := false
	for _, c := range reply.Citations {
		if c == nearest.Citation {
			found = true
		}
	}
	assert.True(t, found, "expected the semantically nearest item's citation")
}

func TestSemanticPathDegradesWhenUnconfigured(t *testing.T) {
	e := newTestEngine(t)

	reply := e.Ask(context.Background(), "show me the demo video")
	assert.Equal(t, SourceLocal, reply.Source)
	assert.NotEmpty(t, reply.Body, "missing semantic path must not break the answer")
}

func TestIndexEmbeddings(t *testing.T) {
	fs, err := mem.NewFS()
	require.NoError(t, err)
	vs, err := vecstore.New(fs, "items.hnsw")
	require.NoError(t, err)

	embedder := &stubEmbedder{vec: []float32{0.5, 0.5, 0, 0}}
	e := newTestEngine(t, WithSemantic(embedder, vs))

	require.NoError(t, e.IndexEmbeddings(context.Background()))
	assert.Equal(t, len(e.Index().Items), vs.Size())
}

func TestIndexEmbeddingsUnconfigured(t *testing.T) {
	e := newTestEngine(t)
	err := e.IndexEmbeddings(context.Background())
	assert.Error(t, err)
}

func TestBuildPromptNamesSubject(t *testing.T) {
	e := newTestEngine(t)
	prompt := e.buildPrompt("what do you build?")
	if !strings.Contains(prompt, knowledge.Default.Profile.Name) {
		t.Errorf("prompt should name the subject: %q", prompt)
	}
	if !strings.Contains(prompt, "what do you build?") {
		t.Errorf("prompt should carry the question: %q", prompt)
	}
}
