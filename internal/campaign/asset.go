package campaign

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// AssetKind 资产类别
type AssetKind uint8

const (
	AssetNative AssetKind = iota // 原生币
	AssetToken                   // 活动指定的ERC20代币
)

func (k AssetKind) String() string {
	if k == AssetToken {
		return "token"
	}
	return "native"
}

// Asset 封闭的双变体资产标识：原生币，或活动构造时指定的唯一代币。
// 其余标识一律在边界处拒绝。
type Asset struct {
	kind  AssetKind
	token common.Address
}

// NativeAsset 原生币资产
func NativeAsset() Asset {
	return Asset{kind: AssetNative}
}

// TokenAsset 代币资产
func TokenAsset(addr common.Address) Asset {
	return Asset{kind: AssetToken, token: addr}
}

// ParseAsset 在边界处解析资产标识：零地址为原生币，活动代币地址为代币
func ParseAsset(addr common.Address, campaignToken common.Address) (Asset, error) {
	switch addr {
	case (common.Address{}):
		return NativeAsset(), nil
	case campaignToken:
		return TokenAsset(addr), nil
	default:
		return Asset{}, fmt.Errorf("%w: %s", ErrInvalidAsset, addr.Hex())
	}
}

// Kind 资产类别
func (a Asset) Kind() AssetKind {
	return a.kind
}

// Token 代币地址；原生币返回零地址
func (a Asset) Token() common.Address {
	if a.kind == AssetNative {
		return common.Address{}
	}
	return a.token
}

// IsNative 是否为原生币
func (a Asset) IsNative() bool {
	return a.kind == AssetNative
}

func (a Asset) String() string {
	if a.kind == AssetNative {
		return "native"
	}
	return a.token.Hex()
}

// MarshalJSON 事件落库时以字符串形式表示资产
func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}
