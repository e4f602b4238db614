package metrics

import "time"

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RecordArticleFetch records one article fetch attempt.
func RecordArticleFetch(success bool, duration time.Duration) {
	ArticleFetchTotal.WithLabelValues(result(success)).Inc()
	ArticleFetchDuration.Observe(duration.Seconds())
}

// RecordSummarize records one summary generation call.
func RecordSummarize(provider string, success bool, duration time.Duration) {
	SummarizeTotal.WithLabelValues(provider, result(success)).Inc()
	SummarizeDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordImageGeneration records one background generation call.
func RecordImageGeneration(provider string, success bool, duration time.Duration) {
	ImageGenerationTotal.WithLabelValues(provider, result(success)).Inc()
	ImageGenerationDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordComposite records one final post composite.
func RecordComposite(success bool, duration time.Duration) {
	CompositeTotal.WithLabelValues(result(success)).Inc()
	CompositeDuration.Observe(duration.Seconds())
}
