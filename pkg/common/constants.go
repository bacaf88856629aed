package common

const (
	RedisStreamAnalysisRequest = "stock.analysis.request"

	RedisStreamGroup    = "analyzer-group"
	RedisStreamConsumer = "analyzer-consumer"

	RedisKeyAnalysisRun = "analysis_run:%s"
)

const (
	MarketBR = "BR"
	MarketUS = "US"
)

const DateLayout = "2006-01-02"
