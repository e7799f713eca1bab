package trivia

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	questionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "questions_created_total",
		Help:      "Questions inserted into the bank.",
	})
	questionsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "questions_deleted_total",
		Help:      "Questions removed from the bank.",
	})
	quizRounds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "quiz_rounds_total",
		Help:      "Quiz play requests by outcome.",
	}, []string{"outcome"})
	categoryCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "category_cache_lookups_total",
		Help:      "Category cache lookups by result.",
	}, []string{"result"})
)
