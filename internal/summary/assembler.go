// Package summary turns a finished interview into coaching tips and
// per-question sample answers.
package summary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trxu05/mock-interview-chatbot/internal/ai"
	"github.com/trxu05/mock-interview-chatbot/internal/fanout"
	"github.com/trxu05/mock-interview-chatbot/internal/model"
	"github.com/trxu05/mock-interview-chatbot/internal/prompt"
)

// Settings controls the model calls made while assembling a summary.
type Settings struct {
	CoachingModel      string
	SampleModel        string
	Temperature        float64
	CoachingMaxTokens  int
	SampleMaxTokens    int
	ConcurrentCoaching bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		CoachingModel:     "gpt-4",
		SampleModel:       "gpt-4o",
		Temperature:       0.7,
		CoachingMaxTokens: 200,
		SampleMaxTokens:   180,
	}
}

// Request is everything the assembler needs from a finished interview.
type Request struct {
	Transcript model.Transcript
	Job        model.JobBackground
	Type       model.InterviewType
	QAPairs    []model.QAPair
}

// Assembler builds an InterviewSummary from one coaching call plus one
// sample-answer call per answered question.
type Assembler struct {
	client   ai.ModelClient
	pool     *fanout.Pool
	settings Settings
	logger   *slog.Logger
}

// NewAssembler creates an assembler. pool is shared process-wide and bounds
// the calls in flight; a nil pool is unbounded.
func NewAssembler(client ai.ModelClient, pool *fanout.Pool, settings Settings, logger *slog.Logger) *Assembler {
	return &Assembler{
		client:   client,
		pool:     pool,
		settings: settings,
		logger:   logger,
	}
}

// Assemble produces the summary for req. Any failed call fails the whole
// summary; no partial result is returned. Errors are *model.ConfigurationError
// or *model.ExternalServiceError.
func (a *Assembler) Assemble(ctx context.Context, req Request) (*model.InterviewSummary, error) {
	if err := ai.CheckReady(a.client); err != nil {
		return nil, err
	}

	start := time.Now()
	transcript := make(model.Transcript, len(req.Transcript))
	copy(transcript, req.Transcript)
	qualifying := model.Qualifying(req.QAPairs)
	focused := prompt.FocusedJobDescription(req.Job, req.Type)

	var (
		suggestions string
		samples     []string
	)
	coach := func(ctx context.Context) error {
		var err error
		suggestions, err = a.coaching(ctx, req.Job, focused, transcript)
		return err
	}
	sample := func(ctx context.Context) error {
		var err error
		samples, err = fanout.Gather(ctx, a.pool, len(qualifying), func(ctx context.Context, i int) (string, error) {
			return a.sampleAnswer(ctx, req.Job, focused, qualifying[i].Question)
		})
		return err
	}

	if a.settings.ConcurrentCoaching {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return coach(gctx) })
		g.Go(func() error { return sample(gctx) })
		if err := g.Wait(); err != nil {
			return nil, classify(err)
		}
	} else {
		if err := coach(ctx); err != nil {
			return nil, classify(err)
		}
		if err := sample(ctx); err != nil {
			return nil, classify(err)
		}
	}

	comparisons := make([]model.Comparison, len(qualifying))
	for i, qa := range qualifying {
		comparisons[i] = model.Comparison{
			Question:     qa.Question,
			UserAnswer:   qa.Answer,
			SampleAnswer: samples[i],
		}
	}

	a.logger.Info("summary assembled",
		"type", req.Type.Normalize(),
		"questions", len(qualifying),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return &model.InterviewSummary{
		Transcript:  transcript,
		Suggestions: suggestions,
		Comparisons: comparisons,
	}, nil
}

func (a *Assembler) coaching(ctx context.Context, job model.JobBackground, focused string, transcript model.Transcript) (string, error) {
	text, err := prompt.CoachingPrompt(job, focused, transcript.Render())
	if err != nil {
		return "", err
	}
	var out string
	err = a.pool.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = a.client.Complete(ctx, ai.ChatRequest{
			Purpose:     ai.PurposeCoaching,
			Model:       a.settings.CoachingModel,
			Messages:    []model.Turn{{Role: model.RoleSystem, Content: text}},
			Temperature: a.settings.Temperature,
			MaxTokens:   a.settings.CoachingMaxTokens,
		})
		return err
	})
	return out, err
}

func (a *Assembler) sampleAnswer(ctx context.Context, job model.JobBackground, focused, question string) (string, error) {
	text, err := prompt.SampleAnswerPrompt(job, focused, question)
	if err != nil {
		return "", err
	}
	return a.client.Complete(ctx, ai.ChatRequest{
		Purpose:     ai.PurposeSampleAnswer,
		Model:       a.settings.SampleModel,
		Messages:    []model.Turn{{Role: model.RoleSystem, Content: text}},
		Temperature: a.settings.Temperature,
		MaxTokens:   a.settings.SampleMaxTokens,
	})
}

// classify keeps typed errors as they are and reports anything else, such as
// a cancelled context or a prompt rendering failure, as an external service error.
func classify(err error) error {
	var cfgErr *model.ConfigurationError
	var extErr *model.ExternalServiceError
	if errors.As(err, &cfgErr) || errors.As(err, &extErr) {
		return err
	}
	return &model.ExternalServiceError{Op: "assemble summary", Err: err}
}
