package source

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	yaz0LongRun    = 0x12
	yaz0ShortExtra = 2

	// no input byte expands to more than the longest run
	yaz0MaxExpansion = 0x111
)

type yaz0Header struct {
	Magic    [4]byte
	Size     uint32
	Reserved [8]byte
}

// decodeYaz0 expands a Yaz0 stream: a group header byte announces
// eight chunks (MSB first), set bits are literal bytes, cleared bits
// back-references into the output produced so far
func decodeYaz0(buf []byte) ([]byte, error) {
	var header yaz0Header
	if err := binary.Read(bytes.NewReader(buf), binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrCorrupt, err)
	}

	src := buf[binary.Size(header):]

	var (
		dst = make([]byte, 0, min(int64(header.Size), int64(len(src))*yaz0MaxExpansion))
		pos int
	)

	next := func() (byte, error) {
		if pos >= len(src) {
			return 0, fmt.Errorf("%w: stream ends at %d of %d bytes", ErrCorrupt, len(dst), header.Size)
		}
		b := src[pos]
		pos++
		return b, nil
	}

	for uint32(len(dst)) < header.Size { //#nosec:G115 // bounded by header.Size
		code, err := next()
		if err != nil {
			return nil, err
		}

		for bit := 7; bit >= 0 && uint32(len(dst)) < header.Size; bit-- { //#nosec:G115 // bounded by header.Size
			if code&(1<<bit) != 0 {
				b, err := next()
				if err != nil {
					return nil, err
				}
				dst = append(dst, b)
				continue
			}

			if dst, err = yaz0BackRef(dst, next); err != nil {
				return nil, err
			}
		}
	}

	// a run may overshoot the declared size
	return dst[:header.Size], nil
}

func yaz0BackRef(dst []byte, next func() (byte, error)) ([]byte, error) {
	b1, err := next()
	if err != nil {
		return nil, err
	}

	b2, err := next()
	if err != nil {
		return nil, err
	}

	dist := int(b1&0x0F)<<8 | int(b2) + 1
	n := int(b1 >> 4)
	if n == 0 {
		b3, err := next()
		if err != nil {
			return nil, err
		}
		n = int(b3) + yaz0LongRun
	} else {
		n += yaz0ShortExtra
	}

	if dist > len(dst) {
		return nil, fmt.Errorf("%w: back-reference %d bytes before start at %d", ErrCorrupt, dist, len(dst))
	}

	// byte-wise as source and destination may overlap
	from := len(dst) - dist
	for i := range n {
		dst = append(dst, dst[from+i])
	}

	return dst, nil
}
