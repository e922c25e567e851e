// Package config loads, normalizes, and validates lingosub configuration.
//
// Values are layered in a fixed order: repository defaults, the TOML file
// (~/.config/lingosub/config.toml or ./lingosub.toml), .env files, and
// LINGOSUB_* environment variables. OPENAI_API_KEY is honoured as a credential
// fallback. Target languages are canonicalized through the language package so
// downstream code always receives a lower-case ISO code.
//
// CLI flags are applied by the caller after Load returns.
package config
