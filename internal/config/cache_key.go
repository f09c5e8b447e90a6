package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CatalogResponseKey returns the cache key for a public catalog GET response.
// The path already includes the query string, so identical requests share one
// entry.
func (r *CacheKeyStruct) CatalogResponseKey(resource, pathWithQuery string) string {
	return fmt.Sprintf("catalog:%s:resp:%s", resource, pathWithQuery)
}

// CatalogResponsePrefix returns the key prefix covering every cached response
// for a resource, used for invalidation after writes.
func (r *CacheKeyStruct) CatalogResponsePrefix(resource string) string {
	return fmt.Sprintf("catalog:%s:resp:", resource)
}

var CacheKey = NewCacheKeyStruct()
