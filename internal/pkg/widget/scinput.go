package widget

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// buyWithUSDT(amount, to) on the settlement contract
const buyWithUSDTABI = `[{"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"address","name":"to","type":"address"}],"name":"buyWithUSDT","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"payable","type":"function"}]`

var buyWithUSDT = mustParseABI(buyWithUSDTABI)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

// EncodeBuyWithUSDT packs the buyWithUSDT call data for the given fiat
// amount and recipient wallet. USDT carries six decimals, so the amount is
// scaled to mwei before packing.
func EncodeBuyWithUSDT(amount float64, to string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("amount must be positive, got %v", amount)
	}
	if !common.IsHexAddress(to) {
		return "", fmt.Errorf("invalid recipient address %q", to)
	}

	mwei := new(big.Int)
	new(big.Float).Mul(big.NewFloat(amount), big.NewFloat(1e6)).Int(mwei)

	data, err := buyWithUSDT.Pack("buyWithUSDT", mwei, common.HexToAddress(to))
	if err != nil {
		return "", fmt.Errorf("pack buyWithUSDT: %w", err)
	}
	return "0x" + hex.EncodeToString(data), nil
}
