package services

import "github.com/prometheus/client_golang/prometheus"

// Chat outcomes recorded by chatAnswers.
const (
	outcomeOK           = "ok"
	outcomeFallback     = "fallback"
	outcomeUnconfigured = "unconfigured"
)

var (
	chatAnswers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_answers_total",
			Help: "Chat answers by outcome (ok, fallback, unconfigured).",
		},
		[]string{"outcome"},
	)

	suggestionSupports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestion_support_changes_total",
			Help: "Support additions and removals on citizen suggestions.",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(chatAnswers, suggestionSupports)
}
