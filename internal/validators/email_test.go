package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	mx  map[string]bool
	ips map[string]bool
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if f.mx[name] {
		return []*net.MX{{Host: "mx." + name, Pref: 10}}, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if f.ips[host] {
		return []net.IPAddr{{IP: net.IPv4(192, 0, 2, 1)}}, nil
	}
	return nil, errors.New("no such host")
}

func TestIsEmailDomainValid(t *testing.T) {
	prev := resolver
	resolver = fakeResolver{
		mx:  map[string]bool{"courts.pl": true},
		ips: map[string]bool{"club.example": true},
	}
	t.Cleanup(func() { resolver = prev })

	tests := []struct {
		email string
		want  bool
	}{
		{"player@courts.pl", true},
		{"Player@COURTS.PL", true},
		{"coach@club.example", true},
		{"nobody@unknown.invalid", false},
		{"no-at-sign", false},
		{"@courts.pl", false},
		{"trailing@", false},
		{"dotless@localhost", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmailDomainValid(tt.email))
		})
	}
}
