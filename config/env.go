package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultAPIBaseURL  = "https://megabodega-delivery.preview.emergentagent.com"
	defaultAppEnv      = "local"
	defaultAppKey      = "change-me-in-production"
	defaultLanguage    = "es"
	defaultTheme       = "light"
	defaultCacheDriver = "memory"
	defaultHTTPTimeout = "30s"
	defaultOAuthAddr   = "127.0.0.1:43117"
	defaultMetricsAddr = "127.0.0.1:9464"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads bodega.json and .env from the working directory, merging them
// over the built-in defaults. Safe to call repeatedly; the first call wins.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("bodega.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"API_BASE_URL":     defaultAPIBaseURL,
		"APP_ENV":          defaultAppEnv,
		"APP_KEY":          defaultAppKey,
		"DATA_DIR":         "",
		"DATABASE_PATH":    "",
		"DEFAULT_LANGUAGE": defaultLanguage,
		"DEFAULT_THEME":    defaultTheme,
		"REDIS_ADDR":       "",
		"REDIS_PASSWORD":   "",
		"CACHE_DRIVER":     defaultCacheDriver,
		"HTTP_TIMEOUT":     defaultHTTPTimeout,
		"OAUTH_ADDR":       defaultOAuthAddr,
		"METRICS_ADDR":     defaultMetricsAddr,
	}
}

// APIBaseURL is the backend root; all gateway calls go to <base>/api/...
func APIBaseURL() string {
	_ = Load()
	return strings.TrimRight(get("API_BASE_URL", defaultAPIBaseURL), "/")
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// AppKey seals the persisted bearer token at rest.
func AppKey() string {
	_ = Load()
	return get("APP_KEY", defaultAppKey)
}

// DataDir is where session, cart and preference files live.
// Defaults to ~/.bodega when unset.
func DataDir() string {
	_ = Load()
	if dir := get("DATA_DIR", ""); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bodega"
	}
	return filepath.Join(home, ".bodega")
}

func DefaultLanguage() string {
	_ = Load()
	return get("DEFAULT_LANGUAGE", defaultLanguage)
}

func DefaultTheme() string {
	_ = Load()
	return get("DEFAULT_THEME", defaultTheme)
}

// RedisAddr is empty unless a redis-backed catalog cache is configured.
func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", "")
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

// CacheDriver selects the catalog cache backend: "memory" or "redis".
func CacheDriver() string {
	_ = Load()
	driver := strings.ToLower(get("CACHE_DRIVER", defaultCacheDriver))
	switch driver {
	case "memory", "redis":
		return driver
	default:
		return defaultCacheDriver
	}
}

// HTTPTimeout bounds every outgoing request.
func HTTPTimeout() time.Duration {
	_ = Load()
	d, err := time.ParseDuration(get("HTTP_TIMEOUT", defaultHTTPTimeout))
	if err != nil || d <= 0 {
		d = 30 * time.Second
	}
	return d
}

// OAuthListenAddr is the loopback address the Google login callback binds to.
func OAuthListenAddr() string {
	_ = Load()
	return get("OAUTH_ADDR", defaultOAuthAddr)
}

// MetricsAddr is where the courier watch loop exposes /metrics.
func MetricsAddr() string {
	_ = Load()
	return get("METRICS_ADDR", defaultMetricsAddr)
}

// DatabasePath is the sqlite file holding the offline catalog snapshot.
func DatabasePath() string {
	_ = Load()
	if p := get("DATABASE_PATH", ""); p != "" {
		return p
	}
	return filepath.Join(DataDir(), "catalog.db")
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and bodega.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// GetBool reads a boolean key ("true"/"1" → true).
func GetBool(key string, fallback bool) bool {
	_ = Load()
	raw := get(key, strconv.FormatBool(fallback))
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}

// Set overrides a key in memory. Used by tests and by CLI flags that shadow
// config values (e.g. --api-url).
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	values[strings.ToUpper(strings.TrimSpace(key))] = strings.TrimSpace(value)
	mu.Unlock()
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	// Real environment variables win over both files.
	for key := range loaded {
		if v := strings.TrimSpace(os.Getenv("BODEGA_" + key)); v != "" {
			loaded[key] = v
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}
