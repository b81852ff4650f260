package redis

import "fmt"

// recordKey returns the Redis key holding the value for a ledger key
func (s *Storage) recordKey(key string) string {
	return fmt.Sprintf("%s:asset:%s", s.cfg.KeyPrefix, key)
}

// indexKey returns the Redis key of the sorted set listing every ledger key.
// All members share score 0, so ZRANGE yields them in lexical order.
func (s *Storage) indexKey() string {
	return fmt.Sprintf("%s:idx:assets", s.cfg.KeyPrefix)
}
