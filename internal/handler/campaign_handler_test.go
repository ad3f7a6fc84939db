package handler_test

import (
	"bytes"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blues/fundme/internal/campaign"
	"github.com/blues/fundme/internal/handler"
	"github.com/blues/fundme/internal/vault"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner    = common.HexToAddress("0x00000000000000000000000000000000000000a0")
	donor    = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	token    = common.HexToAddress("0x00000000000000000000000000000000000000ee")
	treasury = common.HexToAddress("0x00000000000000000000000000000000000000ff")
)

// newTestRouter 构造只挂活动路由的测试引擎
func newTestRouter(t *testing.T) (*gin.Engine, *vault.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v := vault.NewMemory(treasury)
	v.Mint(donor, big.NewInt(1000))

	camp, err := campaign.New(campaign.Config{
		Owner:      owner,
		Goal:       big.NewInt(10),
		Deadline:   time.Now().Add(time.Hour),
		LockPeriod: time.Minute,
		Token:      token,
	}, v)
	require.NoError(t, err)

	h := handler.NewCampaignHandler(camp)
	r := gin.New()
	r.GET("/campaign", h.GetCampaign)
	r.GET("/campaign/leaderboard", h.GetLeaderboard)
	r.GET("/campaign/donors/:address", h.GetDonor)
	r.POST("/campaign/donate", h.Donate)
	r.POST("/campaign/finalize", h.Finalize)
	r.POST("/campaign/refund", h.Refund)
	r.POST("/campaign/withdraw", h.Withdraw)
	r.POST("/campaign/ownership", h.TransferOwnership)
	return r, v
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDonateAndQuery(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/campaign/donate", handler.DonateRequest{
		Donor:  donor.Hex(),
		Amount: "5",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/campaign", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data handler.CampaignResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "5", resp.Data.TotalEthRaised)
	assert.Equal(t, "funding", resp.Data.State)

	w = doJSON(t, r, http.MethodGet, "/campaign/donors/"+donor.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var donorResp struct {
		Data handler.DonorResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &donorResp))
	assert.Equal(t, "5", donorResp.Data.NativeContribution)
	assert.Equal(t, uint64(1), donorResp.Data.DonationCount)
}

func TestLeaderboardEndpoint(t *testing.T) {
	r, v := newTestRouter(t)
	other := common.HexToAddress("0x00000000000000000000000000000000000000d2")
	v.Mint(other, big.NewInt(100))

	for _, req := range []handler.DonateRequest{
		{Donor: donor.Hex(), Amount: "2"},
		{Donor: other.Hex(), Amount: "5"},
	} {
		w := doJSON(t, r, http.MethodPost, "/campaign/donate", req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/campaign/leaderboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []handler.LeaderboardEntryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, other.Hex(), resp.Data[0].Donor)
	assert.Equal(t, "5", resp.Data[0].Total)
	assert.Equal(t, 1, resp.Data[0].Rank)
	assert.Equal(t, donor.Hex(), resp.Data[1].Donor)
}

func TestDonateValidationErrors(t *testing.T) {
	r, _ := newTestRouter(t)

	// 金额非法
	w := doJSON(t, r, http.MethodPost, "/campaign/donate", handler.DonateRequest{
		Donor:  donor.Hex(),
		Amount: "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 未知资产
	w = doJSON(t, r, http.MethodPost, "/campaign/donate", handler.DonateRequest{
		Donor:  donor.Hex(),
		Asset:  "0x00000000000000000000000000000000000000cc",
		Amount: "1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 地址非法
	w = doJSON(t, r, http.MethodPost, "/campaign/donate", handler.DonateRequest{
		Donor:  "not-an-address",
		Amount: "1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorClassMapping(t *testing.T) {
	r, _ := newTestRouter(t)

	// 募集中提取：状态门控 → 409（非拥有者会先触发403，这里用拥有者）
	w := doJSON(t, r, http.MethodPost, "/campaign/withdraw", handler.WithdrawRequest{
		Caller: owner.Hex(),
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 非拥有者提取 → 403
	w = doJSON(t, r, http.MethodPost, "/campaign/withdraw", handler.WithdrawRequest{
		Caller: donor.Hex(),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 募集中退款 → 409
	w = doJSON(t, r, http.MethodPost, "/campaign/refund", handler.RefundRequest{
		Donor: donor.Hex(),
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 非拥有者转移拥有者 → 403
	w = doJSON(t, r, http.MethodPost, "/campaign/ownership", handler.TransferOwnershipRequest{
		Caller:   donor.Hex(),
		NewOwner: donor.Hex(),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFinalizeEndpointNoop(t *testing.T) {
	r, _ := newTestRouter(t)

	// 截止前 finalize 不生效，返回当前状态
	w := doJSON(t, r, http.MethodPost, "/campaign/finalize", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "funding", resp.Data["state"])
}
