package campaign

// State 活动生命周期状态
type State uint8

const (
	StateFunding    State = iota // 募集中
	StateSuccessful              // 成功（终态）
	StateFailed                  // 失败（终态）
)

// Terminal 是否为终态；进入终态后状态不再变化
func (s State) Terminal() bool {
	return s == StateSuccessful || s == StateFailed
}

func (s State) String() string {
	switch s {
	case StateFunding:
		return "funding"
	case StateSuccessful:
		return "successful"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
