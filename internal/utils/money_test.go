package utils_test

import (
	"testing"

	"github.com/granaapp/grana_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1234.56", want: "1234.56"},
		{in: "1234,56", want: "1234.56"},
		{in: " 10 ", want: "10"},
		{in: "0.1", want: "0.1"},
		{in: "0", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "1.999", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := utils.ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseSignedAmount(t *testing.T) {
	got, err := utils.ParseSignedAmount("-150,25")
	require.NoError(t, err)
	assert.Equal(t, "-150.25", got.String())

	_, err = utils.ParseSignedAmount("1.2345")
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	d, _ := utils.ParseSignedAmount("7,5")
	assert.Equal(t, "7.50", utils.FormatAmount(d))
}
