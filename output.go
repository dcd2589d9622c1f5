package main

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"github.com/Luzifer/fres-extract/fres"
	"github.com/Luzifer/fres-extract/skelexport"
)

// handleSubfile lists the subfile and writes whatever the CLI options
// ask for into the destination
func handleSubfile(entryPath string, sf fres.Subfile) error {
	data := contents(sf)

	if data == nil {
		fmt.Println(entryPath) //nolint:forbidigo // Intended to print entry list
	} else {
		fmt.Printf("%s\t%d\t%016x\n", entryPath, len(data), xxhash.Sum64(data)) //nolint:forbidigo // Intended to print entry list
	}

	if cfg.Extract && data != nil {
		if err := writeFile(entryPath, data); err != nil {
			return fmt.Errorf("extracting contents: %w", err)
		}
		logrus.WithField("entry", entryPath).Info("entry extracted")
	}

	if m, ok := sf.(*fres.Model); ok && cfg.ExportSkeletons && m.Skeleton != nil {
		var buf bytes.Buffer
		if err := skelexport.Write(&buf, m.Name(), m.Skeleton, true); err != nil {
			return fmt.Errorf("exporting skeleton: %w", err)
		}

		if err := writeFile(entryPath+".glb", buf.Bytes()); err != nil {
			return fmt.Errorf("writing skeleton: %w", err)
		}
		logrus.WithField("entry", entryPath).Info("skeleton exported")
	}

	return nil
}

// contents returns the raw payload carried by the subfile, texture
// surfaces are returned as stored (base level followed by mipmaps)
func contents(sf fres.Subfile) []byte {
	switch v := sf.(type) {
	case *fres.EmbeddedFile:
		return v.Data

	case *fres.Texture:
		out := make([]byte, 0, len(v.Data)+len(v.MipmapData))
		return append(append(out, v.Data...), v.MipmapData...)

	default:
		return nil
	}
}

// entryName turns a subfile name into a path below its category
// directory, names can not escape the destination
func entryName(cat fres.Category, name string) string {
	name = strings.TrimLeft(path.Clean("/"+name), "/")
	if name == "" {
		name = "unnamed"
	}

	return path.Join(cat.String(), name)
}

func writeFile(entryPath string, data []byte) error {
	destPath := path.Join(cfg.Dest, entryPath)
	if err := os.MkdirAll(path.Dir(destPath), dirPermissions); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	if err := os.WriteFile(destPath, data, filePermissions); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
