package utils

import (
	"log/slog"

	"github.com/adriangalilea/go-utils/internal/format"
	"github.com/adriangalilea/go-utils/internal/kev"
	"github.com/adriangalilea/go-utils/internal/logging"
	"github.com/adriangalilea/go-utils/internal/project"
)

// Re-export selected internal types as a stable public API surface.
type Store = kev.Store
type Entry = kev.Entry
type KeyEntry = kev.KeyEntry
type Option = kev.Option

var (
	WithSources      = kev.WithSources
	WithEnviron      = kev.WithEnviron
	WithFileSystem   = kev.WithFileSystem
	WithLogger       = kev.WithLogger
	WithMaskKeywords = kev.WithMaskKeywords
)

// NewKEV returns a store reading "os" then ".env".
func NewKEV(opts ...Option) *Store { return kev.New(opts...) }

// DiscoverKEV returns a store that also reads the .env files of the enclosing
// project and monorepo roots. Discovery walks the filesystem once, here.
func DiscoverKEV(opts ...Option) *Store { return kev.Discover(opts...) }

// Log returns the shared console logger (LOG_LEVEL, NO_COLOR aware).
func Log() *slog.Logger { return logging.Default() }

func FindProjectRoot(start string) string { return project.FindProjectRoot(start) }

func FindMonorepoRoot(start string) string { return project.FindMonorepoRoot(start) }

// Currency formats amount in the ISO 4217 currency code, e.g. "-$1,234.50".
func Currency(amount float64, code string) (string, error) { return format.Currency(amount, code) }

// CurrencySymbol returns the narrow symbol of an ISO 4217 code ("$" for USD).
func CurrencySymbol(code string) (string, error) { return format.Symbol(code) }

// CurrencyDecimals returns the standard number of decimals of an ISO 4217 code.
func CurrencyDecimals(code string) (int, error) { return format.Decimals(code) }

// Number formats v with thousands separators and the given decimals.
func Number(v float64, decimals int) string { return format.Number(v, decimals) }

// Percent formats a ratio (0.125) as a percentage ("12.5%").
func Percent(ratio float64, decimals int) string { return format.Percent(ratio, decimals) }
