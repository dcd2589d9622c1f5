package fres

import "github.com/Luzifer/fres-extract/layout"

// subfile carries the parts shared by all subfile kinds
type subfile struct {
	category Category
	header   *layout.Record
	name     string
}

// Category returns the category the subfile was listed in
func (s subfile) Category() Category { return s.category }

// Header returns the raw subfile header
func (s subfile) Header() *layout.Record { return s.header }

// Name returns the name of the subfile as stored in its header, falling
// back to the dictionary entry name
func (s subfile) Name() string { return s.name }

func newSubfile(r reader, c Category, hdr *layout.Record, e IndexEntry, nameField string) subfile {
	name := r.str(hdr.Offset(nameField))
	if name == "" {
		name = e.Name
	}

	return subfile{category: c, header: hdr, name: name}
}
