package fres

import "fmt"

// EmbeddedFile is an arbitrary file stored inside the container, its
// name is the dictionary entry name
type EmbeddedFile struct {
	subfile

	Offset int64
	Data   []byte
}

func decodeEmbeddedFile(r reader, e IndexEntry) (Subfile, error) {
	rec, err := r.set.decode(recEmbeddedFile, r.buf, e.DataOffset)
	if err != nil {
		return nil, fmt.Errorf("decoding embedded file header: %w", err)
	}

	f := &EmbeddedFile{
		subfile: subfile{category: CategoryEmbeddedFiles, header: rec, name: e.Name},
		Offset:  rec.Offset("data_offset"),
	}

	if f.Data, err = r.slice("embedded file", f.Offset, rec.Int("length")); err != nil {
		return nil, fmt.Errorf("decoding embedded file data: %w", err)
	}

	if f.Data == nil {
		f.Data = []byte{}
	}

	return f, nil
}
