package observability

const (
	MUsecaseRequests   MetricKey = "usecase_requests_total"
	MUsecaseDuration   MetricKey = "usecase_duration_seconds"
	MEventsPublished   MetricKey = "events_published_total"
	MProductStock      MetricKey = "product_stock"
	MOrderLinesRefused MetricKey = "order_lines_refused_total"
)
