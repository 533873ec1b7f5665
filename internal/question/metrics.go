package question

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeQuestion  = "question"
	outcomeExhausted = "exhausted"
)

var quizSelections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "trivia",
	Name:      "quiz_selections_total",
	Help:      "Quiz draws by outcome: a question was served or the category was exhausted.",
}, []string{"outcome"})
