package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FieldEdits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "composer_field_edits_total",
			Help: "Accepted form field edits.",
		},
		[]string{"field"},
	)

	LimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "composer_limit_rejections_total",
			Help: "Field edits rejected for exceeding the character limit.",
		},
		[]string{"field"},
	)

	PreviewRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "composer_preview_renders_total",
			Help: "Markdown previews rendered.",
		},
		[]string{"engine"},
	)

	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "composer_submissions_total",
			Help: "Post submissions by outcome.",
		},
		[]string{"outcome"},
	)

	SubmitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "composer_submit_duration_seconds",
			Help:    "Time spent waiting for the forum API.",
			Buckets: prometheus.DefBuckets,
		},
	)
)
