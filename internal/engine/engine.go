// Package engine orchestrates one user turn: guardrails, rate limiting,
// the remote completion attempt, and the local knowledge pipeline it falls
// back to. Every public entry point degrades to a best-effort textual
// response; no panic or error terminates the conversation session.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kittclouds/foliobot/internal/convo"
	"github.com/kittclouds/foliobot/internal/extract"
	"github.com/kittclouds/foliobot/internal/index"
	"github.com/kittclouds/foliobot/internal/intent"
	"github.com/kittclouds/foliobot/internal/knowledge"
	"github.com/kittclouds/foliobot/internal/livepage"
	"github.com/kittclouds/foliobot/internal/remote"
	"github.com/kittclouds/foliobot/internal/respond"
	"github.com/kittclouds/foliobot/internal/suggest"
	"github.com/kittclouds/foliobot/pkg/vecstore"
)

// Source records which path produced a reply.
type Source string

const (
	SourceRemote    Source = "remote"
	SourceLocal     Source = "local"
	SourceGuardrail Source = "guardrail"
	SourceRateLimit Source = "ratelimit"
)

const rateLimitMessage = "One moment — I'm still thinking about your last question. Please wait a couple of seconds and ask again."

// Reply is the engine's answer to one user turn.
type Reply struct {
	Body        string           `json:"body"`
	Citations   []index.Citation `json:"citations,omitempty"`
	Suggestions []string         `json:"suggestions"`
	Intent      intent.Type      `json:"intent"`
	Source      Source           `json:"source"`
	Summarized  bool             `json:"summarized"`
}

// Config tunes the engine.
type Config struct {
	// MinRequestSpacing is the minimum gap between remote completion
	// attempts. Turns arriving sooner get the soft wait message.
	MinRequestSpacing time.Duration
	Extract           extract.Thresholds
	Finder            respond.FinderConfig
	Session           convo.Config
}

// DefaultConfig returns the tuned values.
func DefaultConfig() Config {
	return Config{
		MinRequestSpacing: 2 * time.Second,
		Extract:           extract.DefaultThresholds(),
		Finder:            respond.DefaultFinderConfig(),
		Session:           convo.DefaultConfig(),
	}
}

// Engine is the assistant. One Engine serves one page lifetime; the index
// is built once and treated as immutable afterwards.
type Engine struct {
	kb        *knowledge.Base
	ix        *index.Index
	extractor *extract.Extractor
	classify  *intent.Classifier
	router    *respond.Router
	session   *convo.Session

	provider remote.CompletionProvider
	embedder remote.EmbeddingProvider
	vecs     *vecstore.Store

	limiter *rate.Limiter
	log     *zap.Logger
}

// Option configures optional collaborators.
type Option func(*Engine)

// WithProvider wires the remote completion fallback.
func WithProvider(p remote.CompletionProvider) Option {
	return func(e *Engine) { e.provider = p }
}

// WithSemantic wires the embedding provider and vector store used by the
// retrieval-miss fallback.
func WithSemantic(p remote.EmbeddingProvider, vs *vecstore.Store) Option {
	return func(e *Engine) { e.embedder = p; e.vecs = vs }
}

// WithLogger injects the logger; default is a nop.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New builds the engine: index, extractor, classifier, and router over the
// given knowledge base and live page.
func New(kb *knowledge.Base, page livepage.Repository, session *convo.Session, cfg Config, opts ...Option) *Engine {
	ix := index.NewBuilder(kb, page).Build()

	e := &Engine{
		kb:        kb,
		ix:        ix,
		extractor: extract.New(kb, page, cfg.Extract),
		classify:  intent.NewClassifier(),
		router:    respond.NewRouter(kb, ix, page, cfg.Finder),
		session:   session,
		limiter:   rate.NewLimiter(rate.Every(cfg.MinRequestSpacing), 1),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Index exposes the built index (read-only by convention).
func (e *Engine) Index() *index.Index { return e.ix }

// Session exposes the conversation session.
func (e *Engine) Session() *convo.Session { return e.session }

// Ask handles one user turn end to end.
func (e *Engine) Ask(ctx context.Context, text string) (reply Reply) {
	// Nothing may escape: degrade to the profile summary on panic.
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("recovered from panic in Ask", zap.Any("panic", r))
			reply = Reply{
				Body:        e.kb.Profile.Summary,
				Suggestions: suggest.Suggest(intent.General, nil),
				Intent:      intent.General,
				Source:      SourceLocal,
			}
		}
	}()

	e.record(convo.RoleUser, text)

	// Guardrails run before anything else; triggered input never reaches
	// the provider.
	if msg := checkGuardrails(text); msg != "" {
		reply = Reply{
			Body:        msg,
			Suggestions: suggest.Suggest(intent.General, nil),
			Intent:      intent.General,
			Source:      SourceGuardrail,
		}
		reply.Summarized = e.record(convo.RoleBot, reply.Body)
		return reply
	}

	// Verbosity preference inferred from phrasing, persisted at the next
	// summarization point.
	if detailed, ok := convo.InferDetailPreference(text); ok {
		e.session.SetDetailed(detailed)
	}

	// Remote-first, when configured and not rate limited.
	if e.provider != nil {
		if !e.limiter.Allow() {
			reply = Reply{
				Body:        rateLimitMessage,
				Suggestions: suggest.Suggest(intent.General, nil),
				Intent:      intent.General,
				Source:      SourceRateLimit,
			}
			reply.Summarized = e.record(convo.RoleBot, reply.Body)
			return reply
		}

		if completion, err := e.provider.Complete(ctx, e.buildPrompt(text)); err == nil {
			reply = Reply{
				Body:        completion,
				Suggestions: suggest.Suggest(intent.General, nil),
				Intent:      intent.General,
				Source:      SourceRemote,
			}
			reply.Summarized = e.record(convo.RoleBot, reply.Body)
			return reply
		} else {
			// Never surfaced to the user; the local path answers.
			e.log.Info("remote completion failed, using local path", zap.Error(err))
		}
	}

	reply = e.local(ctx, text)
	reply.Summarized = e.record(convo.RoleBot, reply.Body)
	return reply
}

// local runs the knowledge pipeline: extract → classify → route → suggest.
func (e *Engine) local(ctx context.Context, text string) Reply {
	entities := e.extractor.Extract(text)
	t := e.classify.Classify(text, entities)
	resp := e.router.Route(t, text, e.session.Detailed())

	// Retrieval miss on a details intent: the semantic path, when wired,
	// supplies ranked fallback citations.
	if resp.Resolved == nil && (t == intent.ProjectDetails || t == intent.AchievementDetails) {
		if extra := e.semanticCitations(ctx, text, 2); len(extra) > 0 {
			resp.Citations = append(resp.Citations, extra...)
		}
	}

	return Reply{
		Body:        resp.Body,
		Citations:   resp.Citations,
		Suggestions: suggest.Suggest(t, resp.Resolved),
		Intent:      t,
		Source:      SourceLocal,
	}
}

// semanticCitations embeds the query and returns citations of the nearest
// indexed items. Best effort; any failure yields nothing.
func (e *Engine) semanticCitations(ctx context.Context, text string, k int) []index.Citation {
	if e.embedder == nil || e.vecs == nil || e.vecs.Size() == 0 {
		return nil
	}

	vec, err := e.embedder.Embed(ctx, text)
	if err != nil {
		e.log.Debug("query embedding failed", zap.Error(err))
		return nil
	}
	ids, err := e.vecs.Search(vec, k)
	if err != nil {
		e.log.Debug("semantic search failed", zap.Error(err))
		return nil
	}

	var out []index.Citation
	for _, id := range ids {
		for i := range e.ix.Items {
			if e.ix.Items[i].ID == id {
				out = append(out, e.ix.Items[i].Citation)
				break
			}
		}
	}
	return out
}

// IndexEmbeddings computes and stores embeddings for every indexed item.
// Optional: called once after build when an embedding provider is wired.
func (e *Engine) IndexEmbeddings(ctx context.Context) error {
	if e.embedder == nil || e.vecs == nil {
		return fmt.Errorf("engine: semantic path not configured")
	}

	for i := range e.ix.Items {
		it := &e.ix.Items[i]
		vec, err := e.embedder.Embed(ctx, it.Title+" "+it.Text)
		if err != nil {
			// Per-item failure skips the item, same as index building.
			e.log.Debug("item embedding failed", zap.String("title", it.Title), zap.Error(err))
			continue
		}
		if err := e.vecs.Add(it.ID, vec); err != nil {
			e.log.Debug("vector insert failed", zap.String("title", it.Title), zap.Error(err))
		}
	}
	return nil
}

// buildPrompt frames the user question with the subject's profile so the
// remote model answers in context.
func (e *Engine) buildPrompt(question string) string {
	return fmt.Sprintf(
		"You are the portfolio assistant for %s (%s). Answer briefly and factually.\n\nVisitor question: %s",
		e.kb.Profile.Name, e.kb.Profile.Headline, question,
	)
}

// record appends to the session, swallowing storage failures. History is
// an enhancement, not a dependency of answering.
func (e *Engine) record(role, content string) bool {
	summarized, err := e.session.Record(role, content)
	if err != nil {
		e.log.Warn("failed to record message", zap.Error(err))
		return false
	}
	return summarized
}
