package timezone

import (
	"fmt"
	"strings"
)

// Region is a named office location and the timezone it runs on.
type Region struct {
	Name     string `json:"name" yaml:"name"`
	Timezone string `json:"timezone" yaml:"timezone"`
}

// DefaultRegions is the built-in office table. Order matters: the resolver
// returns the first name found in the input.
var DefaultRegions = []Region{
	// 본사 / 아시아
	{Name: "서울", Timezone: "Asia/Seoul"},
	{Name: "도쿄", Timezone: "Asia/Tokyo"},
	{Name: "상하이", Timezone: "Asia/Shanghai"},
	{Name: "싱가포르", Timezone: "Asia/Singapore"},
	{Name: "두바이", Timezone: "Asia/Dubai"},
	{Name: "뭄바이", Timezone: "Asia/Kolkata"},
	{Name: "방콕", Timezone: "Asia/Bangkok"},

	// 유럽
	{Name: "런던", Timezone: "Europe/London"},
	{Name: "파리", Timezone: "Europe/Paris"},
	{Name: "베를린", Timezone: "Europe/Berlin"},
	{Name: "모스크바", Timezone: "Europe/Moscow"},

	// 미주
	{Name: "뉴욕", Timezone: "America/New_York"},
	{Name: "시카고", Timezone: "America/Chicago"},
	{Name: "로스앤젤레스", Timezone: "America/Los_Angeles"},
	{Name: "밴쿠버", Timezone: "America/Vancouver"},
	{Name: "상파울루", Timezone: "America/Sao_Paulo"},

	// 오세아니아 / 아프리카
	{Name: "시드니", Timezone: "Australia/Sydney"},
	{Name: "오클랜드", Timezone: "Pacific/Auckland"},
	{Name: "요하네스버그", Timezone: "Africa/Johannesburg"},
	{Name: "하와이", Timezone: "Pacific/Honolulu"},
}

// Resolver maps free text to timezone identifiers and back.
// It is read-only after construction and safe for concurrent use.
type Resolver struct {
	regions []Region
	names   map[string]string // timezone -> display name
}

// NewResolver builds a resolver over the given regions.
// Names and timezones must both be unique, and every timezone must load.
func NewResolver(regions []Region) (*Resolver, error) {
	r := &Resolver{
		regions: make([]Region, 0, len(regions)),
		names:   make(map[string]string, len(regions)),
	}

	seenNames := make(map[string]struct{}, len(regions))
	for _, region := range regions {
		if region.Name == "" || region.Timezone == "" {
			return nil, fmt.Errorf("region %+v: name and timezone are required", region)
		}
		if _, ok := seenNames[region.Name]; ok {
			return nil, fmt.Errorf("duplicate region name %q", region.Name)
		}
		if _, ok := r.names[region.Timezone]; ok {
			return nil, fmt.Errorf("duplicate region timezone %q", region.Timezone)
		}
		if !IsValidTimezone(region.Timezone) {
			return nil, fmt.Errorf("region %q: invalid timezone %q", region.Name, region.Timezone)
		}

		seenNames[region.Name] = struct{}{}
		r.names[region.Timezone] = region.Name
		r.regions = append(r.regions, region)
	}

	return r, nil
}

// MustNewResolver is NewResolver for tables known to be valid.
func MustNewResolver(regions []Region) *Resolver {
	r, err := NewResolver(regions)
	if err != nil {
		panic(err)
	}
	return r
}

// NewDefaultResolver returns a resolver over DefaultRegions.
func NewDefaultResolver() *Resolver {
	return MustNewResolver(DefaultRegions)
}

// ResolveTimezone returns the timezone of the first configured region whose
// name occurs anywhere in text. Plain substring match, table order decides ties.
func (r *Resolver) ResolveTimezone(text string) (string, bool) {
	for _, region := range r.regions {
		if strings.Contains(text, region.Name) {
			return region.Timezone, true
		}
	}
	return "", false
}

// DisplayName returns the region name for tz, or tz itself when unknown.
func (r *Resolver) DisplayName(tz string) string {
	if name, ok := r.names[tz]; ok {
		return name
	}
	return tz
}

// Regions returns a copy of the configured table in resolution order.
func (r *Resolver) Regions() []Region {
	out := make([]Region, len(r.regions))
	copy(out, r.regions)
	return out
}
