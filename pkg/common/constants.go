package common

const (
	// CacheKeyPrefixSnapshot namespaces snapshot entries in a shared cache.
	CacheKeyPrefixSnapshot = "market_snapshot:"

	// GeminiGenerateContentMethod is the supported-method name of text generation capable models.
	GeminiGenerateContentMethod = "generateContent"

	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)
