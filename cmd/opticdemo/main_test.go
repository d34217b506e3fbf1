package main

import "testing"

func TestEarlyFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		flag string
		want string
		ok   bool
	}{
		{"space form", []string{"backup", "--theme", "light"}, "theme", "light", true},
		{"equals form", []string{"backup", "--theme=light"}, "theme", "light", true},
		{"equals config path", []string{"--config=/etc/optic.yaml"}, "config", "/etc/optic.yaml", true},
		{"absent", []string{"backup", "/data"}, "theme", "", false},
		{"dangling value", []string{"--theme"}, "theme", "", false},
		{"prefix is not a match", []string{"--themes=light"}, "theme", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := earlyFlag(tt.args, tt.flag)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("earlyFlag(%v, %q) = %q, %v; want %q, %v",
					tt.args, tt.flag, got, ok, tt.want, tt.ok)
			}
		})
	}
}
