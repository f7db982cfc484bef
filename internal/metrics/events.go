package metrics

import (
	"log/slog"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
)

// EventMetricsCollector turns session events into game metrics. It is
// plugged into the session publisher fan-out.
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Publish records metrics for one session event
func (e *EventMetricsCollector) Publish(evt domain.Event) {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case domain.EventRoundStarted:
		RoundsStarted.Inc()

	case domain.EventWhackResolved:
		outcome, ok := evt.Payload.(*domain.HitOutcome)
		if !ok {
			slog.Debug(LogMsgPayloadUnexpected, "type", evt.Type)
			return
		}
		result := ResultArmor
		if outcome.Killed {
			result = ResultKill
		}
		Whacks.WithLabelValues(string(outcome.Archetype), result).Inc()
		MoneySaved.Add(float64(outcome.MoneySaved))

	case domain.EventMissRecorded:
		Misses.Inc()

	case domain.EventRoundFinished:
		summary, ok := evt.Payload.(domain.RoundSummary)
		if !ok {
			slog.Debug(LogMsgPayloadUnexpected, "type", evt.Type)
			return
		}
		RoundsFinished.Inc()
		RoundScore.Observe(float64(summary.Score))
	}

	slog.Debug(LogMsgMetricsRecorded, "type", evt.Type)
}
