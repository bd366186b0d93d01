package scoreboard

import (
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// ParseAccount parses account script hash given either as a Neo address or
// as a little-endian hex string (with optional 0x prefix).
func ParseAccount(s string) (util.Uint160, error) {
	if h, err := address.StringToUint160(s); err == nil {
		return h, nil
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("neither address nor hex script hash: %s", s)
	}
	return h, nil
}
