package trip

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirements_Validate(t *testing.T) {
	valid := Requirements{
		Destination: "东京",
		Budget:      6000,
		Days:        3,
		Interests:   []string{"美食"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Requirements)
		wantErr string
	}{
		{"missing destination", func(r *Requirements) { r.Destination = "" }, "destination"},
		{"budget too low", func(r *Requirements) { r.Budget = 999 }, "budget"},
		{"zero days", func(r *Requirements) { r.Days = 0 }, "days"},
		{"too many days", func(r *Requirements) { r.Days = 31 }, "days"},
		{"no interests", func(r *Requirements) { r.Interests = nil }, "interest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			req.Interests = append([]string(nil), valid.Interests...)
			tt.mutate(&req)

			err := req.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequirements_Validate_Boundaries(t *testing.T) {
	req := Requirements{Destination: "巴黎", Budget: 1000, Days: 1, Interests: []string{"文化"}}
	assert.NoError(t, req.Validate())

	req.Days = 30
	assert.NoError(t, req.Validate())
}

func TestAttraction_JSON(t *testing.T) {
	t.Run("text entry encodes as string", func(t *testing.T) {
		data, err := json.Marshal(Attraction{Text: "浅草寺"})
		require.NoError(t, err)
		assert.Equal(t, `"浅草寺"`, string(data))
	})

	t.Run("structured entry encodes as object", func(t *testing.T) {
		data, err := json.Marshal(Attraction{Name: "浅草寺", Address: "台东区", Description: "历史寺庙"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"浅草寺","address":"台东区","description":"历史寺庙"}`, string(data))
	})

	t.Run("decodes string", func(t *testing.T) {
		var a Attraction
		require.NoError(t, json.Unmarshal([]byte(`"东京塔"`), &a))
		assert.Equal(t, "东京塔", a.Text)
		assert.Empty(t, a.Name)
	})

	t.Run("decodes object", func(t *testing.T) {
		var a Attraction
		require.NoError(t, json.Unmarshal([]byte(`{"name":"东京塔","address":"港区"}`), &a))
		assert.Empty(t, a.Text)
		assert.Equal(t, "东京塔", a.Name)
		assert.Equal(t, "港区", a.Address)
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		var a Attraction
		assert.Error(t, json.Unmarshal([]byte(`42`), &a))
	})
}

func TestPlan_JSONFieldNames(t *testing.T) {
	plan := Plan{Destination: "东京", Budget: 6000, Days: 3, Interests: []string{"美食"}}

	data, err := json.Marshal(plan)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{"destination", "budget", "days", "interests", "createdDate", "planDetails"} {
		assert.Contains(t, decoded, key)
	}
}
