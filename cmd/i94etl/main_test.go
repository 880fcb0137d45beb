package main

import "testing"

func TestResolveMetricsBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flagVal string
		envVal  string
		want    string
	}{
		{name: "flag wins over env", flagVal: "pushgateway", envVal: "none", want: "pushgateway"},
		{name: "env used when flag empty", flagVal: "", envVal: "pushgateway", want: "pushgateway"},
		{name: "defaults to none", flagVal: "", envVal: "", want: "none"},
		{name: "explicit none kept", flagVal: "none", envVal: "pushgateway", want: "none"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveMetricsBackend(tc.flagVal, tc.envVal); got != tc.want {
				t.Fatalf("resolveMetricsBackend(%q, %q) = %q, want %q", tc.flagVal, tc.envVal, got, tc.want)
			}
		})
	}
}
