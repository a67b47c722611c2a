package config

import (
	"fmt"
	"math/big"
	"strings"
)

var weiPerGwei = big.NewInt(1_000_000_000)

// GweiToWei converts a decimal gwei amount ("1.5", "120") to wei.
// An empty or zero amount returns nil, meaning "use the node's suggestion".
func GweiToWei(gwei string) (*big.Int, error) {
	gwei = strings.TrimSpace(gwei)
	if gwei == "" {
		return nil, nil
	}

	r, ok := new(big.Rat).SetString(gwei)
	if !ok {
		return nil, fmt.Errorf("not a number: %q", gwei)
	}
	if r.Sign() < 0 {
		return nil, fmt.Errorf("must not be negative: %q", gwei)
	}
	if r.Sign() == 0 {
		return nil, nil
	}

	r.Mul(r, new(big.Rat).SetInt(weiPerGwei))
	if !r.IsInt() {
		return nil, fmt.Errorf("more precise than 1 wei: %q", gwei)
	}
	return new(big.Int).Set(r.Num()), nil
}
