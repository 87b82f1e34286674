package version

import "testing"

func TestInfoWithoutLinkerFlags(t *testing.T) {
	old := BuildDate
	defer func() { BuildDate = old }()
	BuildDate = ""

	info := Info()
	if info.Error == "" {
		t.Fatal("unset BuildDate must surface as an error, not a zero BuildID")
	}
	if info.GoVersion == "" {
		t.Error("GoVersion must always be present")
	}
}

func TestCalculateBuildID(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{
			name:     "epoch date",
			date:     "2026-02-10",
			expected: 0,
		},
		{
			name:     "next day after epoch",
			date:     "2026-02-11",
			expected: 1,
		},
		{
			name:     "one year later",
			date:     "2027-02-10",
			expected: 365,
		},
		{
			name:     "date with leap years included",
			date:     "2033-02-10",
			expected: 2557,
		},
		{
			name:      "invalid format",
			date:      "invalid",
			wantError: true,
		},
		{
			name:      "empty date",
			date:      "",
			wantError: true,
		},
		{
			name:      "before epoch",
			date:      "2026-02-09",
			wantError: true,
		},
	}

	// Субтесты не параллелятся: они мутируют общий BuildDate
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			old := BuildDate
			defer func() { BuildDate = old }()

			BuildDate = tt.date

			got, err := CalculateBuildID()

			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil (id=%d)", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("CalculateBuildID() = %d, want %d", got, tt.expected)
			}
		})
	}
}
