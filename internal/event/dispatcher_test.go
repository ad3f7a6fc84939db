package event

import (
	"math/big"
	"testing"
	"time"

	"github.com/blues/fundme/internal/campaign"
	"github.com/blues/fundme/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	testDonor = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	testOwner = common.HexToAddress("0x00000000000000000000000000000000000000a0")
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.DonationRecord{},
		&model.RefundRecord{},
		&model.SettlementRecord{},
		&model.CampaignEvent{},
	))
	return db
}

func TestDispatcherRoutesEvents(t *testing.T) {
	db := newTestDB(t)
	d, err := NewDispatcher(db, 1)
	require.NoError(t, err)
	defer d.Close()

	at := time.Unix(1700000000, 0)
	d.process(campaign.DonationReceived{Donor: testDonor, Asset: campaign.NativeAsset(), Amount: big.NewInt(5), At: at})
	d.process(campaign.Refunded{Donor: testDonor, Asset: campaign.NativeAsset(), Amount: big.NewInt(5), At: at})
	d.process(campaign.Withdrawn{To: testOwner, Asset: campaign.NativeAsset(), Amount: big.NewInt(7), At: at})
	d.process(campaign.Finalized{State: campaign.StateSuccessful, CombinedTotal: big.NewInt(12), At: at})

	// 每个事件恰好落一条通用事件日志
	var events []model.CampaignEvent
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 4)
	assert.Equal(t, "DonationReceived", events[0].Name)
	assert.Equal(t, "Finalized", events[3].Name)

	// 各事件类型路由到各自的记录表
	var donations []model.DonationRecord
	require.NoError(t, db.Find(&donations).Error)
	require.Len(t, donations, 1)
	assert.Equal(t, testDonor.Hex(), donations[0].Donor)
	assert.Equal(t, "5", donations[0].Amount)
	assert.Equal(t, "native", donations[0].Asset)

	var refunds []model.RefundRecord
	require.NoError(t, db.Find(&refunds).Error)
	require.Len(t, refunds, 1)
	assert.Equal(t, testDonor.Hex(), refunds[0].Donor)

	var settlements []model.SettlementRecord
	require.NoError(t, db.Find(&settlements).Error)
	require.Len(t, settlements, 1)
	assert.Equal(t, testOwner.Hex(), settlements[0].Recipient)
	assert.Equal(t, "7", settlements[0].Amount)
}

func TestDispatcherEmitDelivers(t *testing.T) {
	db := newTestDB(t)
	d, err := NewDispatcher(db, 1)
	require.NoError(t, err)
	defer d.Close()

	d.Emit(campaign.DonationReceived{
		Donor: testDonor, Asset: campaign.NativeAsset(), Amount: big.NewInt(3), At: time.Unix(1700000000, 0),
	})

	// 经协程池异步落库
	require.Eventually(t, func() bool {
		var n int64
		db.Model(&model.DonationRecord{}).Count(&n)
		return n == 1
	}, 2*time.Second, 10*time.Millisecond)
}
