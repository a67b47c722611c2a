package domain

import "github.com/ethereum/go-ethereum/common"

// BeaconSlot is the EIP-1967 storage slot holding a beacon proxy's beacon address:
// bytes32(uint256(keccak256("eip1967.proxy.beacon")) - 1)
var BeaconSlot = common.HexToHash("0xa3f0ad74e5423aebfd80d3ef4346578335a9a72aeaee59ff6cb3582b35133d50")

// BeaconFromWord decodes the low-order 20 bytes of a storage word.
// An unset slot yields the zero address.
func BeaconFromWord(word []byte) common.Address {
	return common.BytesToAddress(word)
}
