// Package codec implements the two-stage voxel-layer compression:
// run-length encoding over equal-value runs, framed with a size-prepended
// LZ4 block. The format assumes voxel-like locality (long runs of
// repeated bytes); it is not a general-purpose compressor.
package codec

import (
	"encoding/binary"

	"github.com/pierrec/lz4/v4"
)

const maxRun = 1<<16 - 1 // a run record's count field is a u16

// Compress takes a nonempty flat voxel grid and returns a blob of the form
// lz4_size_prepended([N_u32_le] (value_u8, run_u16_le)*). An empty grid is
// an invalid input; callers that might pass one should check len(grid)
// first.
func Compress(grid []byte) []byte {
	if len(grid) == 0 {
		return nil
	}

	body := rleEncode(grid)

	bound := lz4.CompressBlockBound(len(body))
	compressed := make([]byte, 4+bound)
	binary.LittleEndian.PutUint32(compressed[:4], uint32(len(body)))

	var ht [1 << 16]int
	n, err := lz4.CompressBlock(body, compressed[4:], ht[:])
	if err != nil {
		return nil
	}
	if n == 0 {
		// CompressBlock declines to emit a block (by its contract) when the
		// input doesn't compress; fall back to a literals-only block, which
		// is still valid LZ4 and always round-trips.
		lit := storeLiterals(body)
		out := make([]byte, 4+len(lit))
		copy(out, compressed[:4])
		copy(out[4:], lit)
		return out
	}

	out := make([]byte, 4+n)
	copy(out, compressed[:4+n])
	return out
}

// storeLiterals encodes src as a single terminal LZ4 sequence with no
// match, which is always a valid (if unexpanded) LZ4 block body.
func storeLiterals(src []byte) []byte {
	litLen := len(src)
	var out []byte
	if litLen < 15 {
		out = append(out, byte(litLen)<<4)
	} else {
		out = append(out, 0xF0)
		rem := litLen - 15
		for rem >= 255 {
			out = append(out, 0xFF)
			rem -= 255
		}
		out = append(out, byte(rem))
	}
	return append(out, src...)
}

// Decompress inverts Compress. Malformed input (truncated header, LZ4
// corruption, an RLE body whose length isn't a multiple of 3) yields an
// empty slice rather than an error or panic: producers are trusted, but
// decoders are defensive and must never abort a caller's render pipeline.
func Decompress(blob []byte) []byte {
	if len(blob) == 0 {
		return nil
	}
	if len(blob) < 4 {
		return nil
	}

	rawLen := binary.LittleEndian.Uint32(blob[:4])
	body := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(blob[4:], body)
	if err != nil {
		return nil
	}
	body = body[:n]

	return rleDecode(body)
}

// GetAt returns the voxel at flat index i without materializing the full
// grid: it walks RLE runs accumulating counts until i falls inside one,
// rather than paying for Decompress(blob)[i]. Returns 0 (air) for a
// malformed blob or an out-of-range index, matching Decompress's
// defensive-empty contract.
func GetAt(blob []byte, i int) byte {
	if i < 0 || len(blob) < 4 {
		return 0
	}

	rawLen := int(binary.LittleEndian.Uint32(blob[:4]))
	body := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(blob[4:], body)
	if err != nil {
		return 0
	}
	body = body[:n]

	header, runs, ok := parseRLEBody(body)
	if !ok || uint32(i) >= header {
		return 0
	}

	cum := 0
	for _, r := range runs {
		cum += int(r.run)
		if i < cum {
			return r.value
		}
	}
	return 0
}

type rleRun struct {
	value byte
	run   uint16
}

// rleEncode emits [N_u32_le] followed by (value_u8, run_u16_le) triples,
// splitting any run longer than maxRun cells into several records of the
// same value.
func rleEncode(grid []byte) []byte {
	out := make([]byte, 4, 4+len(grid))
	binary.LittleEndian.PutUint32(out[:4], uint32(len(grid)))

	i := 0
	for i < len(grid) {
		v := grid[i]
		j := i + 1
		for j < len(grid) && grid[j] == v && j-i < maxRun {
			j++
		}
		run := j - i
		for run > 0 {
			chunk := run
			if chunk > maxRun {
				chunk = maxRun
			}
			out = append(out, v, byte(chunk), byte(chunk>>8))
			run -= chunk
		}
		i = j
	}
	return out
}

// parseRLEBody splits a decompressed RLE body into its header N and its
// run records. The body after the 4-byte header must be a whole number of
// 3-byte records.
func parseRLEBody(body []byte) (header uint32, runs []rleRun, ok bool) {
	if len(body) < 4 {
		return 0, nil, false
	}
	header = binary.LittleEndian.Uint32(body[:4])
	rest := body[4:]
	if len(rest)%3 != 0 {
		return 0, nil, false
	}

	runs = make([]rleRun, 0, len(rest)/3)
	for i := 0; i < len(rest); i += 3 {
		runs = append(runs, rleRun{
			value: rest[i],
			run:   uint16(rest[i+1]) | uint16(rest[i+2])<<8,
		})
	}
	return header, runs, true
}

// rleDecode inverts rleEncode. A malformed body (bad length, or one whose
// runs don't sum to N) returns nil rather than panicking.
func rleDecode(body []byte) []byte {
	n, runs, ok := parseRLEBody(body)
	if !ok {
		return nil
	}

	out := make([]byte, 0, n)
	for _, r := range runs {
		for k := uint16(0); k < r.run; k++ {
			out = append(out, r.value)
		}
	}
	if uint32(len(out)) != n {
		return nil
	}
	return out
}
