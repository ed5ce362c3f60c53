// Package usage accumulates the session's token total and derives the
// energy figures shown next to the chat.
package usage

import "github.com/lumenchat/lumen/pkg/llm"

// Display-only estimates, not measurements. Override via Meter.
const (
	DefaultWattsUnderLoad  = 35.0
	DefaultSecondsPerToken = 0.02
)

// 1 GJ = 277.778 kWh
const kilowattHoursPerGigajoule = 277.778

// Meter converts token counts into energy figures.
type Meter struct {
	WattsUnderLoad  float64
	SecondsPerToken float64
}

// DefaultMeter returns a Meter with the stock constants.
func DefaultMeter() Meter {
	return Meter{
		WattsUnderLoad:  DefaultWattsUnderLoad,
		SecondsPerToken: DefaultSecondsPerToken,
	}
}

// EnergyGigajoules estimates the energy spent evaluating tokenCount
// tokens. Zero tokens is zero energy; the estimate grows linearly with
// the count.
func (m Meter) EnergyGigajoules(tokenCount int) float64 {
	return float64(tokenCount) * m.SecondsPerToken * m.WattsUnderLoad / 1e9
}

// EnergyGigajoules estimates energy with the default meter.
func EnergyGigajoules(tokenCount int) float64 {
	return DefaultMeter().EnergyGigajoules(tokenCount)
}

// GigajoulesToKilowattHours converts gigajoules to kilowatt-hours for
// display.
func GigajoulesToKilowattHours(gj float64) float64 {
	return gj * kilowattHoursPerGigajoule
}

// Report is the usage record rendered after each completed request.
type Report struct {
	TotalTokens   int     `json:"total_tokens"`
	Gigajoules    float64 `json:"energy_gigajoules"`
	KilowattHours float64 `json:"energy_kwh"`
}

// Tracker accumulates the lifetime token count for one session.
// It is not safe for concurrent use; the owning session guards it.
type Tracker struct {
	meter  Meter
	tokens int
}

// NewTracker creates a Tracker that reports energy through the given meter.
func NewTracker(meter Meter) *Tracker {
	return &Tracker{meter: meter}
}

// Record adds the terminal chunk's prompt evaluation count to the running
// total and returns the new total. A nil chunk, or one without the
// counter, leaves the total unchanged.
func (t *Tracker) Record(chunk *llm.GenerateChunk) int {
	if chunk != nil {
		t.tokens += chunk.PromptEvalCount
	}
	return t.tokens
}

// TotalTokens returns the running token total.
func (t *Tracker) TotalTokens() int {
	return t.tokens
}

// Reset clears the running total.
func (t *Tracker) Reset() {
	t.tokens = 0
}

// Report derives the display record from the running total.
func (t *Tracker) Report() Report {
	gj := t.meter.EnergyGigajoules(t.tokens)
	return Report{
		TotalTokens:   t.tokens,
		Gigajoules:    gj,
		KilowattHours: GigajoulesToKilowattHours(gj),
	}
}
