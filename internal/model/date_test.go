package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-03-01", want: "2024-03-01"},
		{in: " 2024-03-01 ", want: "2024-03-01"},
		{in: "2024-03-01T18:30:00Z", want: "2024-03-01"},
		{in: "2024-03-01T23:30:00-02:00", want: "2024-03-01"},
		{in: "2024-02-30", wantErr: true},
		{in: "March 1st", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2024, 5, 6, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-06", d.String())

	require.NoError(t, d.Scan([]byte("2023-12-31")))
	assert.Equal(t, "2023-12-31", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestUtility_JSON(t *testing.T) {
	u := Utility{
		ID:         3,
		PropertyID: 9,
		Type:       UtilityTypeWater,
		Amount:     decimal.RequireFromString("100.50"),
		Date:       NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	}

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"propertyId":9,"type":"water","amount":100.5,"date":"2024-03-01"}`, string(b))
}

func TestUser_PublicOmitsPassword(t *testing.T) {
	u := &User{ID: 1, Email: "a@b.com", PasswordHash: "secret-hash", FullName: "A", Role: DefaultRole}

	b, err := json.Marshal(u.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret-hash")
	assert.JSONEq(t, `{"id":1,"email":"a@b.com","fullName":"A","role":"user"}`, string(b))
}
