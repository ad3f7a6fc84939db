package campaign

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(b byte) common.Address {
	return common.BytesToAddress([]byte{b})
}

func TestLeaderboardDescendingOrder(t *testing.T) {
	b := NewLeaderboard()

	b.Rank(addr(1), big.NewInt(2))
	b.Rank(addr(2), big.NewInt(5))
	b.Rank(addr(3), big.NewInt(1))
	b.Rank(addr(1), big.NewInt(6)) // addr1 追加捐款后合计6

	top := b.Top()
	require.Len(t, top, 3)
	assert.Equal(t, addr(1), top[0].Donor)
	assert.Equal(t, int64(6), top[0].Total.Int64())
	assert.Equal(t, addr(2), top[1].Donor)
	assert.Equal(t, int64(5), top[1].Total.Int64())
	assert.Equal(t, addr(3), top[2].Donor)
	assert.Equal(t, int64(1), top[2].Total.Int64())
}

func TestLeaderboardTieBreakByFirstDonation(t *testing.T) {
	b := NewLeaderboard()

	// addr1 先创建条目，之后追平 addr2 时应排在前面
	b.Rank(addr(1), big.NewInt(3))
	b.Rank(addr(2), big.NewInt(5))

	top := b.Top()
	assert.Equal(t, addr(2), top[0].Donor)

	b.Rank(addr(1), big.NewInt(5))
	top = b.Top()
	assert.Equal(t, addr(1), top[0].Donor)
	assert.Equal(t, addr(2), top[1].Donor)

	// 后来者追平只能排在先来者之后
	b.Rank(addr(3), big.NewInt(5))
	top = b.Top()
	assert.Equal(t, addr(1), top[0].Donor)
	assert.Equal(t, addr(2), top[1].Donor)
	assert.Equal(t, addr(3), top[2].Donor)
}

func TestLeaderboardSnapshotIsCopy(t *testing.T) {
	b := NewLeaderboard()
	b.Rank(addr(1), big.NewInt(3))

	top := b.Top()
	top[0].Total.SetInt64(999)

	assert.Equal(t, int64(3), b.Top()[0].Total.Int64())
}

func TestLeaderboardZeroTotalRemoved(t *testing.T) {
	b := NewLeaderboard()

	// 首笔捐款回滚后条目被移除
	b.Rank(addr(1), big.NewInt(3))
	b.Rank(addr(1), big.NewInt(0))
	assert.Zero(t, b.Len())

	// 未知捐赠者的零总额不创建条目
	b.Rank(addr(2), big.NewInt(0))
	assert.Zero(t, b.Len())
}

func TestLeaderboardRepositionAfterDecrease(t *testing.T) {
	b := NewLeaderboard()

	b.Rank(addr(1), big.NewInt(10))
	b.Rank(addr(2), big.NewInt(7))
	b.Rank(addr(3), big.NewInt(4))

	// 回滚导致总额下降时条目下沉
	b.Rank(addr(1), big.NewInt(5))
	top := b.Top()
	assert.Equal(t, addr(2), top[0].Donor)
	assert.Equal(t, addr(1), top[1].Donor)
	assert.Equal(t, addr(3), top[2].Donor)
}
