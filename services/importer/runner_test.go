package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunnerCreatesMissingParts(t *testing.T) {
	catalog := newStubCatalog()
	catalog.hints["C100"] = "Provider: Circuit Protection -> Varistors, MOVs"

	runner := Runner{Catalog: catalog}
	summary := runner.Run(context.Background(), []PartRequest{
		{Identifier: "C100", Quantity: 5},
		{Identifier: "C200", Quantity: 10},
	})

	require.Equal(t, 2, summary.Created)
	require.Equal(t, 0, summary.Skipped)
	require.Equal(t, 0, summary.Failed)
	require.Equal(t, 2, summary.Total)
	require.Empty(t, summary.FailedIDs)

	require.Equal(t, CategoryPath{Parent: "Circuit Protection", Leaf: "Varistors, MOVs"}, catalog.createdPaths["C100"])
	require.Equal(t, CategoryPath{}, catalog.createdPaths["C200"])
}

func TestRunnerSkipsExistingParts(t *testing.T) {
	catalog := newStubCatalog()
	catalog.records["8"] = []string{"C100"}

	runner := Runner{Catalog: catalog}
	summary := runner.Run(context.Background(), []PartRequest{
		{Identifier: "C100", Quantity: 5},
	})

	require.Equal(t, 0, summary.Created)
	require.Equal(t, 1, summary.Skipped)
	require.Empty(t, catalog.created)
}

func TestRunnerSecondRunIsIdempotent(t *testing.T) {
	catalog := newStubCatalog()
	requests := []PartRequest{
		{Identifier: "C100", Quantity: 5},
		{Identifier: "C200", Quantity: 10},
		{Identifier: "C300", Quantity: 1},
	}

	runner := Runner{Catalog: catalog}
	first := runner.Run(context.Background(), requests)
	require.Equal(t, 3, first.Created)

	second := runner.Run(context.Background(), requests)
	require.Equal(t, 0, second.Created)
	require.Equal(t, 3, second.Skipped)
	require.Equal(t, 0, second.Failed)
}

func TestRunnerContinuesOnFailure(t *testing.T) {
	catalog := newStubCatalog()
	catalog.failCreate["C300"] = errors.New("catalog rejected C300")

	requests := []PartRequest{
		{Identifier: "C100", Quantity: 1},
		{Identifier: "C200", Quantity: 2},
		{Identifier: "C300", Quantity: 3},
		{Identifier: "C400", Quantity: 4},
		{Identifier: "C500", Quantity: 5},
	}

	runner := Runner{Catalog: catalog}
	summary := runner.Run(context.Background(), requests)

	require.Equal(t, 5, summary.Total)
	require.Equal(t, 4, summary.Created)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, []string{"C300"}, summary.FailedIDs)
}

func TestRunnerHintErrorStillCreates(t *testing.T) {
	catalog := newStubCatalog()
	catalog.hintErr = errors.New("help text missing")

	runner := Runner{Catalog: catalog}
	summary := runner.Run(context.Background(), []PartRequest{
		{Identifier: "C100", Quantity: 5},
	})

	require.Equal(t, 1, summary.Created)
	require.Equal(t, CategoryPath{}, catalog.createdPaths["C100"])
}

func TestRunnerStopsBetweenItemsOnCancel(t *testing.T) {
	catalog := newStubCatalog()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := Runner{Catalog: catalog}
	summary := runner.Run(ctx, []PartRequest{
		{Identifier: "C100", Quantity: 5},
		{Identifier: "C200", Quantity: 10},
	})

	require.Equal(t, 0, summary.Total)
	require.Empty(t, catalog.created)
}

type memoryRecorder struct {
	results []ItemResult
	err     error
}

func (r *memoryRecorder) Record(ctx context.Context, res ItemResult) error {
	if r.err != nil {
		return r.err
	}
	r.results = append(r.results, res)
	return nil
}

func TestRunnerRecordsOutcomes(t *testing.T) {
	catalog := newStubCatalog()
	catalog.records["8"] = []string{"C200"}
	catalog.failCreate["C300"] = errors.New("nope")

	recorder := &memoryRecorder{}
	runner := Runner{Catalog: catalog, Recorder: recorder}
	runner.Run(context.Background(), []PartRequest{
		{Identifier: "C100", Quantity: 1},
		{Identifier: "C200", Quantity: 2},
		{Identifier: "C300", Quantity: 3},
	})

	require.Len(t, recorder.results, 3)
	require.Equal(t, OutcomeCreated, recorder.results[0].Outcome)
	require.Equal(t, OutcomeSkipped, recorder.results[1].Outcome)
	require.Equal(t, "already exists", recorder.results[1].Reason)
	require.Equal(t, OutcomeFailed, recorder.results[2].Outcome)
	require.Equal(t, "nope", recorder.results[2].Reason)
}

func TestRunnerRecorderErrorDoesNotAffectOutcome(t *testing.T) {
	catalog := newStubCatalog()
	recorder := &memoryRecorder{err: errors.New("disk full")}

	runner := Runner{Catalog: catalog, Recorder: recorder}
	summary := runner.Run(context.Background(), []PartRequest{
		{Identifier: "C100", Quantity: 1},
	})

	require.Equal(t, 1, summary.Created)
}

func TestRenderReport(t *testing.T) {
	summary := Summary{
		Created:   2,
		Skipped:   1,
		Failed:    1,
		Total:     4,
		FailedIDs: []string{"C300"},
	}

	var out strings.Builder
	summary.RenderReport(&out)
	rendered := out.String()

	require.Contains(t, rendered, "Created")
	require.Contains(t, rendered, "Skipped")
	require.Contains(t, rendered, "Failed")
	require.Contains(t, rendered, "C300")
}
