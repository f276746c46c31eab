package domain

// Criteria is the fixed taxonomy of award categories and the metrics
// registered under each. A nomination may only reference metrics from a
// single category, and every metric must belong to that category.
var Criteria = map[string][]string{
	"Collaboration & Engagement": {
		"Communication Response", "Community Engagement", "Cross-Team Collaboration",
		"Employee Engagement", "Knowledge Sharing", "Mentorship", "Team Participation",
	},
	"Customer Impact": {
		"Critical Project Delivery", "Customer Acquisition", "Customer Satisfaction Score",
		"Response Time", "Retention Rate", "SLA Compliance",
	},
	"Innovation & Growth": {
		"AI Tool Implementation", "Digital Transformation", "Idea Implementation",
		"Market Share", "New Initiatives", "New Revenue Streams",
		"Product Development", "Research & Development",
	},
	"Performance & Efficiency": {
		"Cost Savings", "Onboarding Time", "Process Automation",
		"Project Delivery Speed", "Resource Utilisation", "Task Completion",
	},
	"Quality & Compliance": {
		"Audit Non-Compliance", "Compliance Score", "Critical Defects",
		"Cybersecurity Incidents", "Data Accuracy", "Error Rate Reduction",
		"First-Time Resolution",
	},
}

// ValidateSelections checks a nomination's metric selections against the
// taxonomy: the list must be non-empty, all entries must share one known
// category, and each metric must be registered under that category.
func ValidateSelections(selections []MetricSelection) error {
	if len(selections) == 0 {
		return &ValidationError{Field: "selected_metrics", Message: "you must select at least one metric"}
	}

	first := selections[0].Category
	metrics, ok := Criteria[first]
	if !ok {
		return &ValidationError{Field: "selected_metrics", Message: "invalid category: '" + first + "'"}
	}

	for _, sel := range selections {
		if sel.Category != first {
			return &ValidationError{
				Field:   "selected_metrics",
				Message: "you can only select metrics from one category per nomination",
			}
		}
		if !containsMetric(metrics, sel.Metric) {
			return &ValidationError{
				Field:   "selected_metrics",
				Message: "'" + sel.Metric + "' is not a valid metric for category '" + first + "'",
			}
		}
	}
	return nil
}

func containsMetric(metrics []string, name string) bool {
	for _, m := range metrics {
		if m == name {
			return true
		}
	}
	return false
}
