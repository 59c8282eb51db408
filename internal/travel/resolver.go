package travel

import (
	"context"
	"strings"
)

// DefaultCityCode is used when a destination name matches nothing
const DefaultCityCode = "NYC"

// Resolver maps a free-form destination name to an IATA city/airport code
type Resolver interface {
	ResolveCode(ctx context.Context, destination string) (string, error)
}

// CodeMatch pairs a substring with the code it resolves to
type CodeMatch struct {
	Substring string
	Code      string
}

// DefaultCodeTable is checked in order; the first contained substring wins
var DefaultCodeTable = []CodeMatch{
	{"Rome", "ROM"},
	{"Kyoto", "KIX"},
	{"Costa Rica", "SJO"},
	{"Marrakesh", "RAK"},
	{"Swiss Alps", "ZRH"},
}

// StaticResolver is a substring lookup table. It is a stand-in until a real
// geocoding Resolver is wired in.
type StaticResolver struct {
	Table    []CodeMatch
	Fallback string
}

func NewStaticResolver() *StaticResolver {
	return &StaticResolver{Table: DefaultCodeTable, Fallback: DefaultCityCode}
}

func (r *StaticResolver) ResolveCode(_ context.Context, destination string) (string, error) {
	for _, m := range r.Table {
		if strings.Contains(destination, m.Substring) {
			return m.Code, nil
		}
	}
	return r.Fallback, nil
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(ctx context.Context, destination string) (string, error)

func (f ResolverFunc) ResolveCode(ctx context.Context, destination string) (string, error) {
	return f(ctx, destination)
}
