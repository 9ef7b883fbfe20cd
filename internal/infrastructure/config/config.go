// Package config loads the batch-change pipeline's recognized options from
// the environment, mirroring cmd/clouddns/main.go's os.Getenv-with-default
// idiom rather than introducing a config-file library the teacher's own
// code never reaches for (spf13/viper only appears in go.mod as an
// indirect dependency of testcontainers).
package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

// BatchConfig holds the recognized options from spec §6.
type BatchConfig struct {
	BatchChangeLimit     int
	MinTTL               int
	MaxTTL               int
	ApprovedNameServers  []string
	HighValueDomains     []*regexp.Regexp
	SyncDelayMillis      int // unrelated to the core pipeline; consumed by zone sync (out of scope here)
	MaxSummaryPageSize   int
}

// Load reads BatchConfig from the environment, applying the defaults named
// in spec §6 (batch-size-limit default 1000, maxItems ceiling 100).
func Load() BatchConfig {
	return BatchConfig{
		BatchChangeLimit:    envInt("BATCH_CHANGE_LIMIT", 1000),
		MinTTL:              envInt("MIN_TTL", 30),
		MaxTTL:              envInt("MAX_TTL", 2147483647),
		ApprovedNameServers: envList("APPROVED_NAME_SERVERS"),
		HighValueDomains:    envRegexList("HIGH_VALUE_DOMAINS"),
		SyncDelayMillis:     envInt("SYNC_DELAY_MILLIS", 10000),
		MaxSummaryPageSize:  envInt("MAX_SUMMARY_PAGE_SIZE", 100),
	}
}

func envInt(key string, def int) int {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return n
}

func envList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envRegexList(key string) []*regexp.Regexp {
	patterns := envList(key)
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	return out
}
