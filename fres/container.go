// Package fres decodes FRES resource containers (models, materials,
// textures, animations and embedded files) into an object graph
package fres

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Luzifer/fres-extract/layout"
)

type (
	// Container is the decoded FRES file. Every category is present in
	// Subfiles, absent ones hold an empty slice.
	Container struct {
		Platform Platform
		Header   *layout.Record
		Name     string

		Dicts    [CategoryCount]*IndexGroup
		Subfiles [CategoryCount][]Subfile

		// Errors collects the subfiles (or dictionaries) which could not
		// be decoded, each as *EntryError
		Errors []error
	}

	// Subfile is implemented by every decoded subfile kind
	Subfile interface {
		Category() Category
		Header() *layout.Record
		Name() string
	}

	// Option configures the decoder
	Option func(*decodeOptions)

	decodeOptions struct {
		platform    *Platform
		logger      logrus.FieldLogger
		concurrency int
		categories  map[Category]bool
	}

	subfileDecoder func(r reader, e IndexEntry) (Subfile, error)

	decodeJob struct {
		category Category
		index    int
		entry    IndexEntry
		slot     int
	}
)

var subfileDecoders = [CategoryCount]subfileDecoder{
	CategoryModel:                       decodeModel,
	CategoryTexture:                     decodeTexture,
	CategorySkeletalAnimation:           decodeSkeletalAnimation,
	CategoryMaterialAnimation:           shaderParamDecoder(ShaderParamMaterial),
	CategoryColorAnimation:              shaderParamDecoder(ShaderParamColor),
	CategoryTextureSRTAnimation:         shaderParamDecoder(ShaderParamTextureSRT),
	CategoryPatternAnimation:            decodePatternAnimation,
	CategoryVisibilityAnimation:         visibilityDecoder(VisibilityBone),
	CategoryMaterialVisibilityAnimation: visibilityDecoder(VisibilityMaterial),
	CategoryShapeAnimation:              decodeShapeAnimation,
	CategorySceneAnimation:              decodeSceneAnimation,
	CategoryEmbeddedFiles:               decodeEmbeddedFile,
}

// WithPlatform forces the record table instead of detecting it from
// the container magic
func WithPlatform(p Platform) Option {
	return func(o *decodeOptions) { o.platform = &p }
}

// WithLogger enables progress and failure logging
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *decodeOptions) { o.logger = l }
}

// WithConcurrency decodes up to n subfiles in parallel. The result is
// identical to sequential decoding.
func WithConcurrency(n int) Option {
	return func(o *decodeOptions) { o.concurrency = n }
}

// WithCategories limits decoding to the given categories, all others
// are left empty
func WithCategories(cats ...Category) Option {
	return func(o *decodeOptions) {
		o.categories = make(map[Category]bool, len(cats))
		for _, c := range cats {
			o.categories[c] = true
		}
	}
}

// Decode decodes the container starting at the beginning of buf
func Decode(buf []byte, opts ...Option) (*Container, error) {
	return DecodeAt(context.Background(), buf, 0, opts...)
}

// DecodeAt decodes the container starting at pos. Only a truncated
// container header, an invalid container magic or a cancelled context
// abort decoding, failures inside subfiles are collected in
// Container.Errors.
//
//nolint:funlen,gocognit // dispatcher is easier to follow in one piece
func DecodeAt(ctx context.Context, buf []byte, pos int64, opts ...Option) (*Container, error) {
	o := decodeOptions{concurrency: 1}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.logger = l
	}

	platform := WiiU
	switch {
	case o.platform != nil:
		platform = *o.platform
	case pos >= 0 && pos < int64(len(buf)):
		if p, ok := DetectPlatform(buf[pos:]); ok {
			platform = p
		}
	}

	r := reader{set: platform.Schemas(), buf: buf}

	hdr, err := r.set.decode(recContainerHeader, buf, pos)
	if err != nil {
		return nil, fmt.Errorf("decoding container header: %w", err)
	}

	if err = checkMagic(hdr.Bytes("magic"), string(magicContainer)); err != nil {
		return nil, fmt.Errorf("decoding container header: %w", err)
	}

	c := &Container{
		Platform: platform,
		Header:   hdr,
		Name:     readString(buf, hdr.Offset("name_offset")),
	}

	logger := o.logger.WithFields(logrus.Fields{
		"platform": platform,
		"name":     c.Name,
	})
	logger.Debug("decoded container header")

	var (
		jobs    []decodeJob
		results [CategoryCount][]Subfile
	)

	for _, cat := range Categories() {
		c.Subfiles[cat] = []Subfile{}

		if o.categories != nil && !o.categories[cat] {
			continue
		}

		entries, err := c.categoryEntries(r, cat)
		if err != nil {
			c.Errors = append(c.Errors, &EntryError{Category: cat, Index: -1, Err: err})
			logger.WithError(err).WithField("category", cat).Warn("decoding dictionary")
		}

		if declared := r.set.dictCount(hdr, cat); c.Dicts[cat] != nil && declared != c.Dicts[cat].Len() {
			logger.WithFields(logrus.Fields{
				"category": cat,
				"declared": declared,
				"found":    c.Dicts[cat].Len(),
			}).Debug("dictionary size differs from header count")
		}

		for i, e := range entries {
			if layout.IsSentinel(e.DataOffset) {
				continue
			}
			jobs = append(jobs, decodeJob{category: cat, index: i, entry: e, slot: len(results[cat])})
			results[cat] = append(results[cat], nil)
		}
	}

	errs := make([]error, len(jobs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(o.concurrency, 1))

	for ji, job := range jobs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			sf, err := subfileDecoders[job.category](r, job.entry)
			if err != nil {
				errs[ji] = &EntryError{Category: job.category, Index: job.index, Name: job.entry.Name, Err: err}
				return nil
			}

			results[job.category][job.slot] = sf
			return nil
		})
	}

	if err = eg.Wait(); err != nil {
		return nil, fmt.Errorf("decoding subfiles: %w", err)
	}

	for ji, job := range jobs {
		if errs[ji] != nil {
			c.Errors = append(c.Errors, errs[ji])
			logger.WithError(errs[ji]).WithFields(logrus.Fields{
				"category": job.category,
				"index":    job.index,
				"name":     job.entry.Name,
				"offset":   fmt.Sprintf("0x%x", job.entry.DataOffset),
			}).Warn("decoding subfile")
			continue
		}

		c.Subfiles[job.category] = append(c.Subfiles[job.category], results[job.category][job.slot])
	}

	logger.WithField("subfiles", len(jobs)-countErrors(errs)).Debug("decoded container")

	return c, nil
}

// categoryEntries lists the subfiles of the category. Dictionary
// addressed categories use the dictionary entries, categories stored
// back to back get one entry per declared subfile named by the
// dictionary. A broken dictionary is returned as error next to the
// entries which could still be determined.
func (c *Container) categoryEntries(r reader, cat Category) ([]IndexEntry, error) {
	var (
		dict    *IndexGroup
		dictErr error
	)

	if dictPos := r.set.dictOffset(c.Header, cat); !layout.IsSentinel(dictPos) {
		if dict, dictErr = DecodeIndexGroup(r.set, r.buf, dictPos); dictErr == nil {
			c.Dicts[cat] = dict
		}
	}

	base, stride, ok := r.set.baseOffset(c.Header, cat)
	if !ok {
		if dict == nil {
			return nil, dictErr
		}
		return dict.Entries, nil
	}

	if layout.IsSentinel(base) {
		return nil, dictErr
	}

	entries := make([]IndexEntry, r.set.dictCount(c.Header, cat))
	for i := range entries {
		if i < dict.Len() {
			entries[i] = dict.Entries[i]
		}
		entries[i].DataOffset = base + int64(i)*stride
	}

	return entries, dictErr
}

// Category returns the decoded subfiles of the category
func (c *Container) Category(cat Category) []Subfile {
	if cat < 0 || int(cat) >= CategoryCount {
		return nil
	}
	return c.Subfiles[cat]
}

// Models returns the decoded models
func (c *Container) Models() []*Model { return subfilesOf[*Model](c, CategoryModel) }

// Textures returns the decoded textures
func (c *Container) Textures() []*Texture { return subfilesOf[*Texture](c, CategoryTexture) }

// SkeletalAnimations returns the decoded skeletal animations
func (c *Container) SkeletalAnimations() []*SkeletalAnimation {
	return subfilesOf[*SkeletalAnimation](c, CategorySkeletalAnimation)
}

// EmbeddedFiles returns the decoded embedded files
func (c *Container) EmbeddedFiles() []*EmbeddedFile {
	return subfilesOf[*EmbeddedFile](c, CategoryEmbeddedFiles)
}

func subfilesOf[T Subfile](c *Container, cat Category) []T {
	out := make([]T, 0, len(c.Subfiles[cat]))
	for _, sf := range c.Subfiles[cat] {
		if t, ok := sf.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

func countErrors(errs []error) (n int) {
	for _, err := range errs {
		if err != nil {
			n++
		}
	}
	return n
}
