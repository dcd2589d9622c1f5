package fres

import (
	"fmt"
	"strings"
)

// CategoryCount is the number of dictionary slots in a container
const CategoryCount = 12

// Subfile categories in container slot order
const (
	CategoryModel Category = iota
	CategoryTexture
	CategorySkeletalAnimation
	CategoryMaterialAnimation
	CategoryColorAnimation
	CategoryTextureSRTAnimation
	CategoryPatternAnimation
	CategoryVisibilityAnimation
	CategoryMaterialVisibilityAnimation
	CategoryShapeAnimation
	CategorySceneAnimation
	CategoryEmbeddedFiles
)

// Category identifies one of the twelve subfile kinds
type Category int

var categoryNames = [CategoryCount]string{
	"Model",
	"Texture",
	"SkeletalAnimation",
	"MaterialAnimation",
	"ColorAnimation",
	"TextureSRTAnimation",
	"PatternAnimation",
	"VisibilityAnimation",
	"MaterialVisibilityAnimation",
	"ShapeAnimation",
	"SceneAnimation",
	"EmbeddedFiles",
}

// Categories returns all categories in slot order
func Categories() []Category {
	out := make([]Category, CategoryCount)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory resolves a category by its (case-insensitive) name
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if strings.EqualFold(n, name) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}

func (c Category) String() string {
	if c < 0 || int(c) >= CategoryCount {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}
