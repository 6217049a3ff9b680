package ingestion

import "github.com/pkg/errors"

// ErrCanonicalNotFound is returned by MergeArticle when the target article
// does not exist.
var ErrCanonicalNotFound = errors.New("canonical article not found")
