package campaign

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Entry 排行榜条目
type Entry struct {
	Donor common.Address
	Total *big.Int // 跨资产合并总额（原始相加）

	seq uint64 // 条目创建序号，总额相同时先创建者在前
}

// Leaderboard 按合并总额降序维护的排行榜。
// 条目在首次捐款时创建，之后只更新不删除；规模无上界。
type Leaderboard struct {
	entries []*Entry
	index   map[common.Address]int
	nextSeq uint64
}

// NewLeaderboard 创建空排行榜
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{index: make(map[common.Address]int)}
}

// Rank 将捐赠者的最新合并总额归位。
// 每次只有一个条目变化，单元素插入式调整即可；
// 总额回滚到零的新条目会被移除（仅发生在首笔捐款回滚时）。
func (b *Leaderboard) Rank(donor common.Address, total *big.Int) {
	i, ok := b.index[donor]
	if !ok {
		if total.Sign() == 0 {
			return
		}
		b.entries = append(b.entries, &Entry{
			Donor: donor,
			Total: new(big.Int).Set(total),
			seq:   b.nextSeq,
		})
		b.nextSeq++
		i = len(b.entries) - 1
		b.index[donor] = i
	} else {
		if total.Sign() == 0 {
			b.remove(i)
			return
		}
		b.entries[i].Total.Set(total)
	}

	// 上浮
	for i > 0 && b.less(b.entries[i-1], b.entries[i]) {
		b.swap(i-1, i)
		i--
	}
	// 下沉（仅在回滚使总额降低后发生）
	for i < len(b.entries)-1 && b.less(b.entries[i], b.entries[i+1]) {
		b.swap(i, i+1)
		i++
	}
}

// less a 是否应排在 b 之后
func (b *Leaderboard) less(a, other *Entry) bool {
	switch a.Total.Cmp(other.Total) {
	case -1:
		return true
	case 1:
		return false
	default:
		return a.seq > other.seq
	}
}

func (b *Leaderboard) swap(i, j int) {
	b.entries[i], b.entries[j] = b.entries[j], b.entries[i]
	b.index[b.entries[i].Donor] = i
	b.index[b.entries[j].Donor] = j
}

func (b *Leaderboard) remove(i int) {
	delete(b.index, b.entries[i].Donor)
	copy(b.entries[i:], b.entries[i+1:])
	b.entries = b.entries[:len(b.entries)-1]
	for j := i; j < len(b.entries); j++ {
		b.index[b.entries[j].Donor] = j
	}
}

// Top 排行榜快照，按名次降序
func (b *Leaderboard) Top() []Entry {
	out := make([]Entry, len(b.entries))
	for i, e := range b.entries {
		out[i] = Entry{Donor: e.Donor, Total: new(big.Int).Set(e.Total)}
	}
	return out
}

// Len 条目数
func (b *Leaderboard) Len() int {
	return len(b.entries)
}
