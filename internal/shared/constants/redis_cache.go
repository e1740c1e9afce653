package constants

import (
	"time"
)

// Redis keys and TTLs used across Ticketly.
// Pattern: ticketly:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG      = 24 * time.Hour // registry backed data, changes on redeploy
	TTL_SEMI_STATIC_LONG = 4 * time.Hour  // persisted hall layouts
	TTL_DYNAMIC_SHORT    = 5 * time.Minute
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "ticketly"
)

// ================== VENUES MODULE ==================

const (
	CACHE_KEY_TEMPLATE_LAYOUT = CACHE_PREFIX + ":venues:template_layout:" // + template-name
	CACHE_KEY_HALL_LAYOUT     = CACHE_PREFIX + ":venues:hall_layout:uuid:" // + hall-id
	CACHE_KEY_HALLS_BY_CINEMA = CACHE_PREFIX + ":venues:halls:cinema:"     // + cinema-id | all
)

const (
	TTL_TEMPLATE_LAYOUT = TTL_STATIC_LONG
	TTL_HALL_LAYOUT     = TTL_SEMI_STATIC_LONG
	TTL_HALLS_BY_CINEMA = TTL_DYNAMIC_SHORT
)

// ================== SESSIONS MODULE ==================

const (
	CACHE_KEY_SESSIONS_BY_TITLE = CACHE_PREFIX + ":sessions:title:uuid:" // + title-id
	LOCK_KEY_SESSIONS_ENSURE    = CACHE_PREFIX + ":locks:sessions:ensure:" // + title-id
)

const (
	TTL_SESSIONS_BY_TITLE = TTL_DYNAMIC_SHORT
)

// ================== RATE LIMIT ==================

const (
	RATE_LIMIT_PREFIX = CACHE_PREFIX + ":rate_limit:"
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_HALLS_ALL = CACHE_PREFIX + ":venues:halls:*"
)

// ================== KEY BUILDERS ==================

func BuildTemplateLayoutKey(templateName string) string {
	return CACHE_KEY_TEMPLATE_LAYOUT + templateName
}

func BuildHallLayoutKey(hallID string) string {
	return CACHE_KEY_HALL_LAYOUT + hallID
}

func BuildHallsByCinemaKey(cinemaID string) string {
	if cinemaID == "" {
		cinemaID = "all"
	}
	return CACHE_KEY_HALLS_BY_CINEMA + cinemaID
}

func BuildSessionsByTitleKey(titleID string) string {
	return CACHE_KEY_SESSIONS_BY_TITLE + titleID
}

func BuildEnsureLockKey(titleID string) string {
	return LOCK_KEY_SESSIONS_ENSURE + titleID
}
