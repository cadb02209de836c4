// File: utils/constants.go
package utils

import "time"

// CarListCachePrefix is the prefix used for cached car listing queries.
const CarListCachePrefix = "cars:list:"

// CarListCacheTTL is the time-to-live for cached car listings.
const CarListCacheTTL = 5 * time.Minute

// RecommendationCachePrefix is the prefix used for cached AI recommendations.
const RecommendationCachePrefix = "ai:rec:"

// RecommendationCacheTTL is the time-to-live for cached AI recommendations.
const RecommendationCacheTTL = 30 * time.Minute

// CarImageCachePrefix is the prefix used for generated car image URLs.
const CarImageCachePrefix = "ai:img:"

// CarImageCacheTTL is the time-to-live for generated car image URLs.
const CarImageCacheTTL = 24 * time.Hour
