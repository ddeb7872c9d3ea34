package firmware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		mv   int
		want int
	}{
		{mv: 0, want: 0},
		{mv: 500, want: 39},
		{mv: 1250, want: 97},
		{mv: 1650, want: 128},
		{mv: 2500, want: 193},
		{mv: 3300, want: 255},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Code(tt.mv), "%dmV", tt.mv)
	}
}

func TestClassify(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		width int
		want  string
	}{
		{width: 890, want: NoChange},
		{width: 891, want: "0"},
		{width: 1100, want: "0"},
		{width: 1204, want: "0"},
		{width: 1205, want: NoChange},
		{width: 1415, want: NoChange},
		{width: 1520, want: "1"},
		{width: 1624, want: "1"},
		{width: 1836, want: "2"},
		{width: 2149, want: "2"},
		{width: 2150, want: NoChange},
		{width: -3, want: NoChange},
	}
	for _, tt := range tests {
		c, ok := s.Classify(tt.width)
		assert.Equal(t, tt.want, c.State, "%dus", tt.width)
		assert.Equal(t, tt.want != NoChange, ok)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(s *Settings)
		wantErr bool
	}{
		{name: "defaults", modify: func(*Settings) {}},
		{name: "no supply", modify: func(s *Settings) { s.SupplyMV = 0 }, wantErr: true},
		{name: "default above supply", modify: func(s *Settings) { s.DefaultMV = 5000 }, wantErr: true},
		{name: "preset above supply", modify: func(s *Settings) { s.Channels[2].MilliVolts = 3301 }, wantErr: true},
		{name: "empty window", modify: func(s *Settings) { s.Channels[0].MaxUS = s.Channels[0].MinUS }, wantErr: true},
		{name: "overlap", modify: func(s *Settings) { s.Channels[1].MinUS = 1100 }, wantErr: true},
		{name: "reserved state", modify: func(s *Settings) { s.Channels[1].State = NoChange }, wantErr: true},
		{name: "duplicate state", modify: func(s *Settings) { s.Channels[2].State = s.Channels[0].State }, wantErr: true},
		{name: "empty state", modify: func(s *Settings) { s.Channels[0].State = "" }, wantErr: true},
		{name: "touching windows", modify: func(s *Settings) { s.Channels[1].MinUS = s.Channels[0].MaxUS }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSettings)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecoderKeepsLastCode(t *testing.T) {
	d, err := NewDecoder(DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, 128, d.Code())

	steps := []struct {
		width    int
		wantCode int
		state    string
	}{
		{width: 1300, wantCode: 128, state: "-"},
		{width: 1100, wantCode: 39, state: "0"},
		{width: 1700, wantCode: 39, state: "-"},
		{width: 1940, wantCode: 193, state: "2"},
		{width: 1520, wantCode: 97, state: "1"},
	}
	for _, st := range steps {
		got := d.Feed(st.width)
		assert.Equal(t, st.wantCode, got.Code, "%dus", st.width)
		assert.Equal(t, st.state, got.State)
		assert.Equal(t, st.width, got.WidthUS)
	}
}

func TestNewDecoderRejectsInvalid(t *testing.T) {
	s := DefaultSettings()
	s.SupplyMV = -1

	_, err := NewDecoder(s)
	assert.ErrorIs(t, err, ErrInvalidSettings)
}
