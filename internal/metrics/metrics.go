package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LinksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hiresphere_interview_links_created_total",
		Help: "Interview links created by HR users.",
	})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hiresphere_invitation_emails_total",
		Help: "Invitation email attempts by outcome.",
	}, []string{"outcome"})

	InterviewsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hiresphere_interviews_completed_total",
		Help: "Public interviews completed by candidates.",
	})

	ResponsesAnalyzed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hiresphere_responses_analyzed_total",
		Help: "Per-response analysis outcomes.",
	}, []string{"status"})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hiresphere_response_analysis_seconds",
		Help:    "Wall time of a single response analysis call.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)
