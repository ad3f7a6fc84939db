package campaign

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x0000000000000000000000000000000000000001")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000002")
	tok   = common.HexToAddress("0x00000000000000000000000000000000000000e1")
)

func TestLedgerRecordDonation(t *testing.T) {
	l := NewLedger()

	l.RecordDonation(alice, NativeAsset(), big.NewInt(5))
	l.RecordDonation(alice, NativeAsset(), big.NewInt(3))
	l.RecordDonation(alice, TokenAsset(tok), big.NewInt(2))
	l.RecordDonation(bob, NativeAsset(), big.NewInt(1))

	assert.Equal(t, int64(8), l.Contribution(alice, NativeAsset()).Int64())
	assert.Equal(t, int64(2), l.Contribution(alice, TokenAsset(tok)).Int64())
	assert.Equal(t, int64(10), l.CombinedContribution(alice).Int64())
	assert.Equal(t, uint64(3), l.DonationCount(alice))
	assert.Equal(t, uint64(1), l.DonationCount(bob))

	assert.Equal(t, int64(9), l.TotalRaised(AssetNative).Int64())
	assert.Equal(t, int64(2), l.TotalRaised(AssetToken).Int64())
	assert.Equal(t, int64(11), l.CombinedTotal().Int64())
	assert.Equal(t, int64(9), l.Held(AssetNative).Int64())
}

func TestLedgerRollbackDonation(t *testing.T) {
	l := NewLedger()

	l.RecordDonation(alice, NativeAsset(), big.NewInt(5))
	l.RollbackDonation(alice, NativeAsset(), big.NewInt(5))

	assert.Equal(t, int64(0), l.Contribution(alice, NativeAsset()).Int64())
	assert.Equal(t, uint64(0), l.DonationCount(alice))
	assert.Equal(t, int64(0), l.TotalRaised(AssetNative).Int64())
	assert.Equal(t, int64(0), l.Held(AssetNative).Int64())
}

func TestLedgerConsumeForRefund(t *testing.T) {
	l := NewLedger()
	l.RecordDonation(alice, NativeAsset(), big.NewInt(5))

	amount, err := l.ConsumeForRefund(alice, NativeAsset())
	require.NoError(t, err)
	assert.Equal(t, int64(5), amount.Int64())

	// 余额被原子清零
	assert.Equal(t, int64(0), l.Contribution(alice, NativeAsset()).Int64())
	assert.Equal(t, int64(0), l.TotalRaised(AssetNative).Int64())
	assert.Equal(t, int64(0), l.Held(AssetNative).Int64())

	// 二次消费失败
	_, err = l.ConsumeForRefund(alice, NativeAsset())
	assert.ErrorIs(t, err, ErrNothingToRefund)

	// 无记录的捐赠者同样失败
	_, err = l.ConsumeForRefund(bob, NativeAsset())
	assert.ErrorIs(t, err, ErrNothingToRefund)

	// 捐款次数不回退
	assert.Equal(t, uint64(1), l.DonationCount(alice))
}

func TestLedgerRestoreContribution(t *testing.T) {
	l := NewLedger()
	l.RecordDonation(alice, NativeAsset(), big.NewInt(5))

	amount, err := l.ConsumeForRefund(alice, NativeAsset())
	require.NoError(t, err)

	l.RestoreContribution(alice, NativeAsset(), amount)
	assert.Equal(t, int64(5), l.Contribution(alice, NativeAsset()).Int64())
	assert.Equal(t, int64(5), l.TotalRaised(AssetNative).Int64())
	assert.Equal(t, int64(5), l.Held(AssetNative).Int64())
}

func TestLedgerConsumeForWithdraw(t *testing.T) {
	l := NewLedger()
	l.RecordDonation(alice, NativeAsset(), big.NewInt(5))
	l.RecordDonation(bob, NativeAsset(), big.NewInt(5))

	amount, err := l.ConsumeForWithdraw(NativeAsset())
	require.NoError(t, err)
	assert.Equal(t, int64(10), amount.Int64())

	// 持有余额清零，首次成功后即幂等
	assert.Equal(t, int64(0), l.Held(AssetNative).Int64())
	_, err = l.ConsumeForWithdraw(NativeAsset())
	assert.ErrorIs(t, err, ErrNothingToWithdraw)

	// 贡献记录与募集总额不因提取改变
	assert.Equal(t, int64(5), l.Contribution(alice, NativeAsset()).Int64())
	assert.Equal(t, int64(10), l.TotalRaised(AssetNative).Int64())
}
