// Package orchestrator sequences the per-message pipeline: intent
// classification, query planning, concurrent retrieval of both evidence
// channels, sentinel handling, and summarization. It is stateless per call;
// any conversational memory lives with the summarization collaborator.
package orchestrator

import (
	"context"
	"sync"

	"github.com/forkcast/forkcast/internal/common/logger"
	"github.com/forkcast/forkcast/internal/format"
	"github.com/forkcast/forkcast/internal/intent"
	"github.com/forkcast/forkcast/internal/llm"
	"github.com/forkcast/forkcast/internal/metrics"
	"github.com/forkcast/forkcast/internal/planner"
	"github.com/forkcast/forkcast/internal/retriever"
	"github.com/forkcast/forkcast/internal/schema"
)

// Apology is the fixed user-safe message produced when the pipeline fails.
const Apology = "I apologize, but I encountered an error processing your request. Please try again."

// Orchestrator wires the pipeline stages for one chat turn.
type Orchestrator struct {
	Forum      retriever.Retriever
	Web        retriever.Retriever
	Summarizer llm.Summarizer
}

// New builds an orchestrator over the two evidence channels and the
// summarization collaborator.
func New(forum, web retriever.Retriever, summarizer llm.Summarizer) *Orchestrator {
	return &Orchestrator{Forum: forum, Web: web, Summarizer: summarizer}
}

// Process handles one user turn. It never propagates a failure: anything
// unexpected is converted into the fixed apology and an empty bundle at
// this boundary.
func (o *Orchestrator) Process(ctx context.Context, message string) (resp schema.ChatResponse) {
	defer func() {
		if r := recover(); r != nil {
			metrics.IncPipelineFailure()
			logger.Errorf("pipeline failure recovered: %v", r)
			resp = schema.ChatResponse{Message: Apology}
		}
	}()

	bundle := o.Retrieve(ctx, message)

	answer := Apology
	if o.Summarizer != nil {
		text, err := o.Summarizer.Summarize(ctx, message, bundle)
		if err != nil {
			metrics.IncPipelineFailure()
			logger.Errorf("summarization failed: %v", err)
		} else {
			answer = text
		}
	}

	return schema.ChatResponse{
		Message: answer,
		Sources: schema.SourcesPayload{Reddit: bundle.ForumText, Web: bundle.WebText},
	}
}

// Retrieve classifies the message, plans per-channel queries, and runs both
// channels concurrently. Sentinel blocks are converted to absent evidence
// rather than handed downstream.
func (o *Orchestrator) Retrieve(ctx context.Context, message string) schema.EvidenceBundle {
	in := intent.Classify(message)
	metrics.IncIntent(string(in.Kind))
	plan := planner.Plan(in, message)
	logger.Debugf("plan: intent=%s forum=%q web=%q", in.Kind, plan.ForumQuery, plan.WebQuery)

	var forumText, webText string
	var wg sync.WaitGroup
	if o.Forum != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			forumText = o.runChannel(ctx, o.Forum, plan.ForumQuery)
		}()
	}
	if o.Web != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			webText = o.runChannel(ctx, o.Web, plan.WebQuery)
		}()
	}
	wg.Wait()

	var bundle schema.EvidenceBundle
	if usableForum(forumText) {
		bundle.ForumText = forumText
	}
	if usableWeb(webText) {
		bundle.WebText = webText
	}
	return bundle
}

// runChannel isolates one channel: a panic inside a retriever degrades that
// channel to no evidence instead of taking the turn down.
func (o *Orchestrator) runChannel(ctx context.Context, r retriever.Retriever, query string) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.IncChannelFailure(r.Type())
			logger.Errorf("%s channel panicked: %v", r.Type(), rec)
			text = ""
		}
	}()
	text, err := r.Retrieve(ctx, query)
	if err != nil {
		metrics.IncChannelFailure(r.Type())
		logger.Warnf("%s channel failed: %v", r.Type(), err)
		return ""
	}
	return text
}

func usableForum(text string) bool {
	return text != "" && text != format.NoForumResults && text != format.ForumUnavailable
}

func usableWeb(text string) bool {
	return text != "" && text != format.NoWebResults && text != format.WebNotConfigured
}
