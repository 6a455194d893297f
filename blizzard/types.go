package blizzard

import (
	"fmt"
	"net/url"
)

// Region is a Blizzard API region code. The region selects both the
// API host and the namespace suffix for game-data endpoints.
type Region string

const (
	RegionUS Region = "us"
	RegionEU Region = "eu"
	RegionKR Region = "kr"
	RegionTW Region = "tw"
	RegionCN Region = "cn"
)

// Valid reports whether the region is a known region code.
func (r Region) Valid() bool {
	switch r {
	case RegionUS, RegionEU, RegionKR, RegionTW, RegionCN:
		return true
	}
	return false
}

// APIHost returns the game-data API host for the region. China runs on
// its own gateway domain.
func (r Region) APIHost() string {
	if r == RegionCN {
		return "https://gateway.battlenet.com.cn"
	}
	return fmt.Sprintf("https://%s.api.blizzard.com", r)
}

// Locale is a Blizzard API locale code.
type Locale string

const (
	LocaleEnUS Locale = "en_US"
	LocaleEsMX Locale = "es_MX"
	LocalePtBR Locale = "pt_BR"
	LocaleEnGB Locale = "en_GB"
	LocaleEsES Locale = "es_ES"
	LocaleFrFR Locale = "fr_FR"
	LocaleRuRU Locale = "ru_RU"
	LocaleDeDE Locale = "de_DE"
	LocalePtPT Locale = "pt_PT"
	LocaleItIT Locale = "it_IT"
	LocaleKoKR Locale = "ko_KR"
	LocaleZhTW Locale = "zh_TW"
	LocaleZhCN Locale = "zh_CN"
)

// Valid reports whether the locale is a known locale code.
func (l Locale) Valid() bool {
	switch l {
	case LocaleEnUS, LocaleEsMX, LocalePtBR, LocaleEnGB, LocaleEsES,
		LocaleFrFR, LocaleRuRU, LocaleDeDE, LocalePtPT, LocaleItIT,
		LocaleKoKR, LocaleZhTW, LocaleZhCN:
		return true
	}
	return false
}

// DefaultLocale returns the conventional locale for a region.
func DefaultLocale(r Region) Locale {
	switch r {
	case RegionEU:
		return LocaleEnGB
	case RegionKR:
		return LocaleKoKR
	case RegionTW:
		return LocaleZhTW
	case RegionCN:
		return LocaleZhCN
	default:
		return LocaleEnUS
	}
}

// Params are the per-call parameters for an operation: region, locale,
// path parameters and any filter or paging keys. Filter keys with dots
// (name.en_US) are passed through to the query string verbatim.
type Params map[string]string

// clone returns a shallow copy so request building never mutates the
// caller's map.
func (p Params) clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// RequestContext is the fully resolved shape of one API request:
// everything the executor needs except the network call itself. It is
// built fresh per invocation and never shared.
type RequestContext struct {
	Region Region
	Locale Locale
	Path   string
	Query  url.Values
	Token  string
}

// URL renders the request URL against the region's API host. The base
// can be overridden for tests.
func (rc *RequestContext) URL(base string) string {
	if base == "" {
		base = rc.Region.APIHost()
	}
	u := base + rc.Path
	if len(rc.Query) > 0 {
		u += "?" + rc.Query.Encode()
	}
	return u
}

// SearchResult is one entry of a search response.
type SearchResult struct {
	Key struct {
		Href string `json:"href"`
	} `json:"key"`
	Data map[string]interface{} `json:"data"`
}

// SearchPage is the envelope returned by search endpoints.
type SearchPage struct {
	Page              int            `json:"page"`
	PageSize          int            `json:"pageSize"`
	MaxPageSize       int            `json:"maxPageSize"`
	PageCount         int            `json:"pageCount"`
	ResultCountCapped bool           `json:"resultCountCapped"`
	Results           []SearchResult `json:"results"`
}
