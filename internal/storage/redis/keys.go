package redis

import "fmt"

// Key prefix for all duelgrid data
const keyPrefix = "duelgrid"

// statsKey returns the Redis key for a player's stats hash
func statsKey(username string) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, username)
}

// historyKey returns the Redis key for a player's match-history list
func historyKey(username string) string {
	return fmt.Sprintf("%s:history:%s", keyPrefix, username)
}
