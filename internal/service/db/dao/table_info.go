package dao

const (
	// CollectionCandidate 存储候选人信息的表。
	CollectionCandidate = "candidates"

	// CollectionInterview 面试聚合根，会话/对话/作答/评估全部内嵌于此。
	CollectionInterview = "interviews"
)
