package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/storefront-catalog/internal/service"
)

// parseBoolQuery is a helper to flexibly parse boolean-like query parameters.
func parseBoolQuery(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1"
}

// parsePageRequest reads page_index and page_size. Missing values stay zero
// and are defaulted by the service; malformed ones are rejected.
func parsePageRequest(c *gin.Context) (service.PageRequest, error) {
	var (
		req   service.PageRequest
		ferrs []service.FieldError
		err   error
	)
	if v := strings.TrimSpace(c.Query("page_index")); v != "" {
		if req.Index, err = strconv.Atoi(v); err != nil {
			ferrs = append(ferrs, service.FieldError{Field: "page_index", Message: "must be an integer"})
		}
	}
	if v := strings.TrimSpace(c.Query("page_size")); v != "" {
		if req.Size, err = strconv.Atoi(v); err != nil {
			ferrs = append(ferrs, service.FieldError{Field: "page_size", Message: "must be an integer"})
		}
	}
	return req, service.NewInvalidInput(ferrs...)
}

// parseOptionalID reads an optional positive integer query parameter.
func parseOptionalID(c *gin.Context, key string) (*int64, *service.FieldError) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, &service.FieldError{Field: key, Message: "must be a valid integer"}
	}
	return &id, nil
}

func parseIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		return 0, service.NewInvalidInput(service.FieldError{Field: "id", Message: "must be a valid integer"})
	}
	return id, nil
}
