package dataflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/funxy/internal/dataflow"
)

func TestStageLifecycle(t *testing.T) {
	p := dataflow.NewPipeline()
	st := p.AddStage("filter", dataflow.KindFilter)
	snap := st.Snapshot()
	require.Equal(t, dataflow.StatusPending, snap.Status)
	require.NotEmpty(t, snap.ID)

	st.SetStatus(dataflow.StatusRunning)
	st.SetSchemas([]dataflow.Field{{Name: "a", DataType: "i32"}}, nil)
	st.SetRowCount(3)
	st.SetStatus(dataflow.StatusCompleted)

	snap = st.Snapshot()
	require.Equal(t, dataflow.StatusCompleted, snap.Status)
	require.Len(t, snap.InputSchema, 1)
	require.True(t, snap.HasRowCount)
	require.EqualValues(t, 3, snap.RowCount)
}

func TestPipelineSnapshotsPreserveOrder(t *testing.T) {
	p := dataflow.NewPipeline()
	p.AddStage("load", dataflow.KindLoad)
	p.AddStage("filter", dataflow.KindFilter)
	snaps := p.Snapshots()
	require.Len(t, snaps, 2)
	require.Equal(t, "load", snaps[0].Name)
	require.Equal(t, "filter", snaps[1].Name)
}

func TestFailedStatusCarriesReason(t *testing.T) {
	st := dataflow.Failed("column not found")
	require.Equal(t, "Failed", st.Name)
	require.Equal(t, "column not found", st.Reason)
}
