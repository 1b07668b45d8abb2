package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics tracks the quest lifecycle engine: generation outcomes,
// completions, and progression milestones.
type EngineMetrics struct {
	generated        *prometheus.CounterVec
	generateRejected *prometheus.CounterVec
	generateLatency  prometheus.Histogram
	completed        *prometheus.CounterVec
	achievements     *prometheus.CounterVec
	levelUps         prometheus.Counter
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	generated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quests_generated_total",
		Help: "Quests generated, by category and text source.",
	}, []string{"category", "source"})
	generateRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quest_generation_rejected_total",
		Help: "Quest generation requests rejected by eligibility gating.",
	}, []string{"reason"})
	generateLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quest_generation_seconds",
		Help:    "Latency of quest generation including AI text calls.",
		Buckets: prometheus.DefBuckets,
	})
	completed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quests_completed_total",
		Help: "Quests completed, by category.",
	}, []string{"category"})
	achievements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "achievements_unlocked_total",
		Help: "Achievements unlocked, by rarity.",
	}, []string{"rarity"})
	levelUps := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "level_ups_total",
		Help: "Level-up events awarded by the completion engine.",
	})
	reg.MustRegister(generated, generateRejected, generateLatency, completed, achievements, levelUps)
	return &EngineMetrics{
		generated:        generated,
		generateRejected: generateRejected,
		generateLatency:  generateLatency,
		completed:        completed,
		achievements:     achievements,
		levelUps:         levelUps,
	}
}

// IncGenerated records a generated quest with its origin ("generated",
// "manual", "first_quest").
func (e *EngineMetrics) IncGenerated(category, source string) {
	if e == nil || e.generated == nil {
		return
	}
	e.generated.WithLabelValues(normalizeLabel(category), normalizeLabel(source)).Inc()
}

// IncGenerateRejected records an eligibility rejection.
func (e *EngineMetrics) IncGenerateRejected(reason string) {
	if e == nil || e.generateRejected == nil {
		return
	}
	e.generateRejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveGenerateLatency records time spent generating a quest.
func (e *EngineMetrics) ObserveGenerateLatency(d time.Duration) {
	if e == nil || e.generateLatency == nil {
		return
	}
	e.generateLatency.Observe(d.Seconds())
}

// IncCompleted records a completed quest.
func (e *EngineMetrics) IncCompleted(category string) {
	if e == nil || e.completed == nil {
		return
	}
	e.completed.WithLabelValues(normalizeLabel(category)).Inc()
}

// IncAchievementUnlocked records an achievement unlock.
func (e *EngineMetrics) IncAchievementUnlocked(rarity string) {
	if e == nil || e.achievements == nil {
		return
	}
	e.achievements.WithLabelValues(normalizeLabel(rarity)).Inc()
}

// IncLevelUp records a level-up event.
func (e *EngineMetrics) IncLevelUp() {
	if e == nil || e.levelUps == nil {
		return
	}
	e.levelUps.Inc()
}
