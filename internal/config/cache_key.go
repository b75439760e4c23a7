package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ReportKey returns the cache key for the full report of a transcript fingerprint
func (r *CacheKeyStruct) ReportKey(fingerprint string) string {
	return fmt.Sprintf("gconvert:report:%s", fingerprint)
}

var CacheKey = NewCacheKeyStruct()
