package public

import (
	"encoding/json"
	"testing"
)

func TestProductIDFieldUnmarshal(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{raw: `"abc-1"`, want: "abc-1"},
		{raw: `" 42 "`, want: "42"},
		{raw: `42`, want: "42"},
		{raw: `1.5`, want: "1.5"},
		{raw: `-7`, want: "-7"},
		{raw: `0`, want: "0"},
		{raw: `123456789012345680000`, want: "123456789012345680000"},
		{raw: `1e21`, want: "1e+21"},
		{raw: `2.5e22`, want: "2.5e+22"},
		{raw: `0.000001`, want: "0.000001"},
		{raw: `1.5e-7`, want: "1.5e-7"},
		{raw: `null`, want: ""},
	}
	for _, tc := range cases {
		var got productIDField
		if err := json.Unmarshal([]byte(tc.raw), &got); err != nil {
			t.Fatalf("unmarshal %s failed: %v", tc.raw, err)
		}
		if got.String() != tc.want {
			t.Fatalf("unmarshal %s want %q got %q", tc.raw, tc.want, got.String())
		}
	}
}

func TestProductIDFieldRejectsOtherTypes(t *testing.T) {
	var got productIDField
	if err := json.Unmarshal([]byte(`true`), &got); err == nil {
		t.Fatalf("expected error for boolean product id")
	}
}

func TestPositiveInt(t *testing.T) {
	values := map[float64]bool{1: true, 3: true, 0: false, -1: false, 2.5: false}
	for v, ok := range values {
		value := v
		if _, got := positiveInt(&value); got != ok {
			t.Fatalf("positiveInt(%v) want %v got %v", v, ok, got)
		}
	}
	if _, ok := positiveInt(nil); ok {
		t.Fatalf("nil quantity should be rejected")
	}
}
