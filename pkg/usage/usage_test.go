package usage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenchat/lumen/pkg/llm"
	"github.com/lumenchat/lumen/pkg/usage"
)

func TestEnergyGigajoulesZero(t *testing.T) {
	assert.Zero(t, usage.EnergyGigajoules(0))
}

func TestEnergyGigajoulesExact(t *testing.T) {
	// 7 tokens x 0.02 s/token x 35 W = 4.9 J = 4.9e-9 GJ
	assert.InDelta(t, 4.9e-9, usage.EnergyGigajoules(7), 1e-18)
}

func TestEnergyGigajoulesMonotonic(t *testing.T) {
	prev := usage.EnergyGigajoules(0)
	for count := 1; count <= 10000; count += 97 {
		cur := usage.EnergyGigajoules(count)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestGigajoulesToKilowattHours(t *testing.T) {
	assert.InDelta(t, 277.778, usage.GigajoulesToKilowattHours(1), 1e-9)
	assert.Zero(t, usage.GigajoulesToKilowattHours(0))
}

func TestMeterCustomConstants(t *testing.T) {
	meter := usage.Meter{WattsUnderLoad: 100, SecondsPerToken: 0.5}

	// 10 tokens x 0.5 s x 100 W = 500 J = 5e-7 GJ
	assert.InDelta(t, 5e-7, meter.EnergyGigajoules(10), 1e-15)
}

func TestTrackerRecordsTerminalChunk(t *testing.T) {
	tracker := usage.NewTracker(usage.DefaultMeter())

	total := tracker.Record(&llm.GenerateChunk{Done: true, PromptEvalCount: 7})
	assert.Equal(t, 7, total)

	total = tracker.Record(&llm.GenerateChunk{Done: true, PromptEvalCount: 5})
	assert.Equal(t, 12, total)
	assert.Equal(t, 12, tracker.TotalTokens())
}

func TestTrackerIgnoresMissingCounter(t *testing.T) {
	tracker := usage.NewTracker(usage.DefaultMeter())
	tracker.Record(&llm.GenerateChunk{Done: true, PromptEvalCount: 7})

	// Terminal chunk without the counter field leaves the total alone.
	total := tracker.Record(&llm.GenerateChunk{Done: true})
	assert.Equal(t, 7, total)

	// As does a request that never produced a terminal chunk.
	total = tracker.Record(nil)
	assert.Equal(t, 7, total)
}

func TestTrackerReset(t *testing.T) {
	tracker := usage.NewTracker(usage.DefaultMeter())
	tracker.Record(&llm.GenerateChunk{Done: true, PromptEvalCount: 42})

	tracker.Reset()
	assert.Zero(t, tracker.TotalTokens())
	assert.Zero(t, tracker.Report().Gigajoules)
}

func TestTrackerReport(t *testing.T) {
	tracker := usage.NewTracker(usage.DefaultMeter())
	tracker.Record(&llm.GenerateChunk{Done: true, PromptEvalCount: 7})

	report := tracker.Report()
	require.Equal(t, 7, report.TotalTokens)
	assert.InDelta(t, 4.9e-9, report.Gigajoules, 1e-18)
	assert.InDelta(t, usage.GigajoulesToKilowattHours(report.Gigajoules), report.KilowattHours, 1e-18)
}
