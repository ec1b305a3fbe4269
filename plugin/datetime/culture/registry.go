package culture

import (
	"sort"
	"strings"
	"sync"
)

const (
	English        = "en-us"
	EnglishBritish = "en-gb"
	Chinese        = "zh-cn"
)

var configs = map[string]func() *Config{
	English:        sync.OnceValue(func() *Config { return englishConfig(English, false, nil) }),
	EnglishBritish: sync.OnceValue(func() *Config { return englishConfig(EnglishBritish, true, britishHolidays) }),
	Chinese:        sync.OnceValue(chineseConfig),
}

// Lookup returns the grammar of culture code, building it on first use.
func Lookup(code string) (*Config, bool) {
	build, ok := configs[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return nil, false
	}
	return build(), true
}

// Supported lists the culture codes with a grammar, sorted.
func Supported() []string {
	out := keys(configs)
	sort.Strings(out)
	return out
}
