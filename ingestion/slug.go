package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Luismorlan/nashbites/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	maxSlugLength = 100
	fallbackSlug  = "article"
)

var (
	// \s alone is ASCII only, unicode spaces and \v count as whitespace too.
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s\p{Zs}\v\x{2028}\x{2029}\x{feff}-]`)
	whitespaces  = regexp.MustCompile(`[\s\p{Zs}\v\x{2028}\x{2029}\x{feff}]+`)
	hyphens      = regexp.MustCompile(`-+`)
)

// GenerateSlug lower-cases title, drops anything but letters, digits, spaces
// and hyphens, turns whitespace runs into one hyphen and cuts to 100 chars.
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = whitespaces.ReplaceAllString(slug, "-")
	slug = hyphens.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// EnsureUniqueSlug probes base, base-1, base-2... in order and returns the
// first one no article uses.
//
// Two concurrent calls can return the same candidate, the unique index on
// articles.slug then rejects the second insert.
func EnsureUniqueSlug(db *gorm.DB, base string) (string, error) {
	slug := base
	for counter := 1; ; counter++ {
		var count int64
		if err := db.Model(&model.Article{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", errors.Wrap(err, "fail to probe slug "+slug)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
