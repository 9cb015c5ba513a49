package common

const (
	RedisStreamScoreBatchTrigger = "score.batch.trigger"
	RedisStreamScoreRunSummary   = "score.run.summary"

	RedisStreamGroup    = "scoring-group"
	RedisStreamConsumer = "scoring-consumer"
)
