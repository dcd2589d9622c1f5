package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Luzifer/fres-extract/fres"
)

func TestEntryName(t *testing.T) {
	for name, expect := range map[string]string{
		"readme.txt":       "EmbeddedFiles/readme.txt",
		"sub/dir/file.bin": "EmbeddedFiles/sub/dir/file.bin",
		"../../etc/passwd": "EmbeddedFiles/etc/passwd",
		"/absolute":        "EmbeddedFiles/absolute",
		"":                 "EmbeddedFiles/unnamed",
	} {
		assert.Equal(t, expect, entryName(fres.CategoryEmbeddedFiles, name), name)
	}
}

func TestContents(t *testing.T) {
	assert.Equal(t, []byte("abc"), contents(&fres.EmbeddedFile{Data: []byte("abc")}))
	assert.Equal(t, []byte{1, 2, 3}, contents(&fres.Texture{Data: []byte{1, 2}, MipmapData: []byte{3}}))
	assert.Nil(t, contents(&fres.Model{}))
}
