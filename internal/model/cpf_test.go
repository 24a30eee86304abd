package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcareapp/portal-api/pkg/errors"
)

func TestNewCPF(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "formatted valid", input: "111.444.777-35", want: "11144477735"},
		{name: "bare valid", input: "11144477735", want: "11144477735"},
		{name: "another valid", input: "529.982.247-25", want: "52998224725"},
		{name: "strips stray characters", input: " 111 444 777 35 ", want: "11144477735"},
		{name: "too short", input: "1114447773", wantErr: true},
		{name: "too long", input: "111444777351", wantErr: true},
		{name: "all identical digits", input: "00000000000", wantErr: true},
		{name: "all ones", input: "111.111.111-11", wantErr: true},
		{name: "bad first check digit", input: "11144477745", wantErr: true},
		{name: "bad second check digit", input: "11144477736", wantErr: true},
		{name: "letters only", input: "abcdefghijk", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpf, err := NewCPF(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cpf.Value())
			assert.Len(t, cpf.Value(), 11)
		})
	}
}

func TestCPFFormat(t *testing.T) {
	cpf, err := NewCPF("11144477735")
	require.NoError(t, err)
	assert.Equal(t, "111.444.777-35", cpf.Format())
}

func TestCPFEquals(t *testing.T) {
	a, err := NewCPF("111.444.777-35")
	require.NoError(t, err)
	b, err := NewCPF("11144477735")
	require.NoError(t, err)
	c, err := NewCPF("529.982.247-25")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
