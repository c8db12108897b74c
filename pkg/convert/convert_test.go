package convert_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averyclark/porchlight/pkg/convert"
)

func TestFlexInt_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
		wantErr bool
	}{
		{"number", `{"servings": 2}`, 2, false},
		{"string", `{"servings": "2"}`, 2, false},
		{"null", `{"servings": null}`, 0, false},
		{"empty_string", `{"servings": ""}`, 0, false},
		{"garbage", `{"servings": "two"}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target struct {
				Servings convert.FlexInt `json:"servings"`
			}
			err := json.Unmarshal([]byte(tt.payload), &target)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, target.Servings.Int())
		})
	}
}

func TestFlexInt_MarshalAlwaysNumber(t *testing.T) {
	out, err := json.Marshal(convert.FlexInt(4))
	require.NoError(t, err)
	assert.Equal(t, "4", string(out))
}

func TestToIntD(t *testing.T) {
	assert.Equal(t, 7, convert.ToIntD("7", 3))
	assert.Equal(t, 3, convert.ToIntD("", 3))
	assert.Equal(t, 3, convert.ToIntD("x", 3))
}

func TestToBool(t *testing.T) {
	assert.True(t, convert.ToBool("true"))
	assert.True(t, convert.ToBool("1"))
	assert.False(t, convert.ToBool("0"))
	assert.False(t, convert.ToBool(""))
	assert.False(t, convert.ToBool("banana"))
}
