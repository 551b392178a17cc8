package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is one page of a collection as reported by the backend
type Page[T any] struct {
	Items []T
	Total int
}

type envelope[T any] struct {
	Count    *int    `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  *[]T    `json:"results"`
}

// DecodePage accepts both list shapes the backend produces: a paginated
// {count, next, previous, results} envelope, or a bare array holding the
// whole collection, which is paged locally. Items never exceed pageSize.
func DecodePage[T any](raw []byte, page, pageSize int) (Page[T], error) {
	if page < 1 {
		page = 1
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Page[T]{}, fmt.Errorf("[gateway DecodePage] empty list response")
	}

	switch raw[0] {
	case '[':
		var all []T
		if err := json.Unmarshal(raw, &all); err != nil {
			return Page[T]{}, fmt.Errorf("[gateway DecodePage] invalid list: %w", err)
		}
		start := (page - 1) * pageSize
		if start >= len(all) {
			return Page[T]{Items: []T{}, Total: len(all)}, nil
		}
		end := min(start+pageSize, len(all))
		return Page[T]{Items: all[start:end], Total: len(all)}, nil

	case '{':
		var env envelope[T]
		if err := json.Unmarshal(raw, &env); err != nil {
			return Page[T]{}, fmt.Errorf("[gateway DecodePage] invalid page: %w", err)
		}
		if env.Results == nil {
			return Page[T]{}, fmt.Errorf("[gateway DecodePage] page has no results field")
		}
		items := *env.Results
		total := len(items)
		if env.Count != nil {
			total = *env.Count
		}
		if len(items) > pageSize {
			items = items[:pageSize]
		}
		return Page[T]{Items: items, Total: total}, nil

	default:
		return Page[T]{}, fmt.Errorf("[gateway DecodePage] unsupported list shape")
	}
}
