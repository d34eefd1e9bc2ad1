package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "Farmer Joe", want: "Farmer Joe"},
		{name: "trims and collapses", input: "  Farmer \t  Joe \n", want: "Farmer Joe"},
		{name: "control characters", input: "Farmer\x00Joe", want: "Farmer Joe"},
		{name: "decomposed accent composes", input: "Jose\u0301", want: "Jos\u00e9"},
		{name: "empty", input: "   ", wantErr: true},
		{name: "too long", input: strings.Repeat("a", MaxNameLength+1), wantErr: true},
		{name: "exactly max", input: strings.Repeat("\u00e9", MaxNameLength), want: strings.Repeat("\u00e9", MaxNameLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
