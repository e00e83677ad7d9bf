package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/maxviazov/storefront-catalog/internal/repository"
)

const (
	fallbackPageSize = 20
	fallbackMaxSize  = 100
)

// normalizePageRequest clamps a client page request to the configured limits:
// a negative index becomes 0, a missing size takes the default and an oversized
// one is capped.
func normalizePageRequest(req PageRequest, limits PagingLimits) PageRequest {
	def, maxSize := limits.DefaultSize, limits.MaxSize
	if def <= 0 {
		def = fallbackPageSize
	}
	if maxSize <= 0 {
		maxSize = fallbackMaxSize
	}
	def = min(def, maxSize)

	out := req
	if out.Index < 0 {
		out.Index = 0
	}
	if out.Size <= 0 {
		out.Size = def
	}
	if out.Size > maxSize {
		out.Size = maxSize
	}
	return out
}

// window converts a normalized page request into a SQL window. Indexes whose
// offset would overflow are pinned far past any real table size.
func window(req PageRequest) repository.Page {
	const maxOffset = 1 << 40
	if req.Index > maxOffset/req.Size {
		return repository.Page{Limit: req.Size, Offset: maxOffset}
	}
	return repository.PageAt(req.Index, req.Size)
}

func validateName(field, name string, minLen, maxLen int) []FieldError {
	if name == "" {
		return []FieldError{{Field: field, Message: "must not be empty"}}
	}
	if ln := utf8.RuneCountInString(name); ln < minLen || ln > maxLen {
		return []FieldError{{Field: field, Message: lengthMessage(minLen, maxLen)}}
	}
	return nil
}

func lengthMessage(minLen, maxLen int) string {
	return fmt.Sprintf("length must be between %d and %d", minLen, maxLen)
}

func validateRef(field string, id *int64) []FieldError {
	if id != nil && *id <= 0 {
		return []FieldError{{Field: field, Message: "must be > 0"}}
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return nil
}

// normalizeSKU trims and upper-cases so lookups and uniqueness ignore case.
func normalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}
