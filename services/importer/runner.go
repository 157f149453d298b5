package importer

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

type ItemResult struct {
	Request PartRequest
	Outcome Outcome
	// "already exists" for skips, the failure cause for failures
	Reason string
}

// Summary is the run state: explicit tallies threaded through the loop
// and returned at the end instead of living on the runner.
type Summary struct {
	Created   int
	Skipped   int
	Failed    int
	Total     int
	FailedIDs []string
}

func (s *Summary) tally(res ItemResult) {
	s.Total++
	switch res.Outcome {
	case OutcomeCreated:
		s.Created++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
		s.FailedIDs = append(s.FailedIDs, res.Request.Identifier)
	}
}

// Recorder persists per-item outcomes, see services/importer/db.
// recording failures never affect outcome classification.
type Recorder interface {
	Record(ctx context.Context, res ItemResult) error
}

type Runner struct {
	Catalog Catalog
	// optional run history
	Recorder Recorder
}

// Run processes requests strictly one at a time: duplicate check, then
// creation if absent. a failing item is tallied and the loop moves on,
// there are no retries. cancelling ctx stops the loop between items,
// the in-flight item always completes.
func (r Runner) Run(ctx context.Context, requests []PartRequest) Summary {
	ctx, span := tracer.Start(ctx, "runner:Run", trace.WithAttributes(
		attribute.Int("requests", len(requests)),
	))
	defer span.End()

	var summary Summary
	for i, req := range requests {
		if ctx.Err() != nil {
			slog.Warn("run interrupted",
				"processed", i, "remaining", len(requests)-i)
			span.AddEvent("interrupted")
			break
		}

		// external calls for the current item are never cancelled
		// mid-flight, only the loop observes the interrupt
		res := r.processOne(context.WithoutCancel(ctx), req)
		summary.tally(res)

		if r.Recorder != nil {
			err := r.Recorder.Record(context.WithoutCancel(ctx), res)
			if err != nil {
				slog.Warn("failed to record outcome",
					"identifier", req.Identifier, "err", err)
			}
		}

		slog.Info("processed part",
			"identifier", req.Identifier,
			"outcome", res.Outcome,
			"created", summary.Created,
			"skipped", summary.Skipped,
			"failed", summary.Failed,
		)
	}

	return summary
}

func (r Runner) processOne(ctx context.Context, req PartRequest) ItemResult {
	ctx, span := tracer.Start(ctx, "runner:processOne", trace.WithAttributes(
		attribute.String("identifier", req.Identifier),
		attribute.Int("quantity", req.Quantity),
	))
	defer span.End()

	matcher := Matcher{Catalog: r.Catalog}
	if matcher.Exists(ctx, req.Identifier) {
		slog.Info("part already exists, skipping", "identifier", req.Identifier)
		return ItemResult{Request: req, Outcome: OutcomeSkipped, Reason: "already exists"}
	}

	hint, err := r.Catalog.CategoryHint(ctx, req.Identifier)
	if err != nil {
		// no category is inferred when the hint cannot be read, the
		// record is still created
		slog.Warn("could not read category hint",
			"identifier", req.Identifier, "err", err)
		span.RecordError(err)
		hint = ""
	}
	category := ParseCategoryHint(hint)

	err = r.Catalog.CreateRecord(ctx, req.Identifier, req.Quantity, category)
	if err != nil {
		slog.Error("failed to create part",
			"identifier", req.Identifier, "err", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "create failed")
		return ItemResult{Request: req, Outcome: OutcomeFailed, Reason: err.Error()}
	}

	slog.Info("created part",
		"identifier", req.Identifier,
		"quantity", req.Quantity,
		"category", category.String(),
	)
	return ItemResult{Request: req, Outcome: OutcomeCreated}
}
