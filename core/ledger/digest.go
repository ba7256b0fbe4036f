package ledger

import (
	"encoding/binary"
	"encoding/hex"

	"lukechampine.com/blake3"

	"github.com/genlayerlabs/fee-simulator/core/types"
)

// Digest returns a stable BLAKE3 hex digest over a completed
// computation's event log, used as the run envelope's content hash so
// two runs over the same transcript and budget can be compared for
// byte-identical output without storing the full log.
func Digest(events []types.FeeEvent) string {
	h := blake3.New(32, nil)
	var buf [8]byte
	for _, ev := range events {
		binary.BigEndian.PutUint64(buf[:], ev.SequenceID)
		h.Write(buf[:])
		addr := ev.Address
		h.Write(addr[:])
		for _, field := range []uint64{ev.Cost, ev.Staked, ev.Earned, ev.Slashed, ev.Burned} {
			binary.BigEndian.PutUint64(buf[:], field)
			h.Write(buf[:])
		}
	}
	return "0x" + hex.EncodeToString(h.Sum(nil))
}
