package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionID(t *testing.T) {
	const canonical = "6f1c2a9e-3b7d-4c1e-9a2b-5d8e7f6a1b0c"

	tests := []struct {
		name    string
		raw     string
		want    SessionID
		wantErr bool
	}{
		{name: "canonical", raw: canonical, want: canonical},
		{name: "upper case", raw: "6F1C2A9E-3B7D-4C1E-9A2B-5D8E7F6A1B0C", want: canonical},
		{name: "surrounding space", raw: "  " + canonical + "\n", want: canonical},
		{name: "braces", raw: "{" + canonical + "}", want: canonical},
		{name: "urn prefix", raw: "urn:uuid:" + canonical, want: canonical},
		{name: "empty", raw: "", wantErr: true},
		{name: "too short", raw: "6f1c2a9e-3b7d", wantErr: true},
		{name: "not hex", raw: "zzzzzzzz-3b7d-4c1e-9a2b-5d8e7f6a1b0c", wantErr: true},
		{name: "path traversal", raw: "../6f1c2a9e", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSessionID(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidID)
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestSessionID_IsValid(t *testing.T) {
	assert.True(t, SessionID("6f1c2a9e-3b7d-4c1e-9a2b-5d8e7f6a1b0c").IsValid())
	assert.False(t, SessionID("6F1C2A9E-3B7D-4C1E-9A2B-5D8E7F6A1B0C").IsValid())
	assert.False(t, SessionID("{6f1c2a9e-3b7d-4c1e-9a2b-5d8e7f6a1b0c}").IsValid())
	assert.False(t, SessionID("").IsValid())
}
