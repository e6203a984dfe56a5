package services

import (
	"errors"
	"testing"
)

func TestParseLogRange(t *testing.T) {
	t.Parallel()

	today := mustParseDay(t, "2025-06-30")
	cases := []struct {
		name     string
		from     string
		to       string
		wantFrom string
		wantTo   string
		wantErr  error
	}{
		{name: "defaults to window ending today", wantFrom: "2025-06-24", wantTo: "2025-06-30"},
		{name: "explicit range", from: "2025-06-01", to: "2025-06-10", wantFrom: "2025-06-01", wantTo: "2025-06-10"},
		{name: "only to", to: "2025-05-10", wantFrom: "2025-05-04", wantTo: "2025-05-10"},
		{name: "bad from", from: "06/01/2025", wantErr: ErrRangeFromDateInvalid},
		{name: "bad to", to: "2025-13-01", wantErr: ErrRangeToDateInvalid},
		{name: "reversed", from: "2025-06-10", to: "2025-06-01", wantErr: ErrRangeInvalid},
		{name: "too long", from: "2024-01-01", to: "2025-06-01", wantErr: ErrRangeInvalid},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			from, to, err := ParseLogRange(testCase.from, testCase.to, today, 7)
			if testCase.wantErr != nil {
				if !errors.Is(err, testCase.wantErr) {
					t.Fatalf("expected %v, got %v", testCase.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLogRange returned error: %v", err)
			}
			if FormatCalendarDate(from) != testCase.wantFrom || FormatCalendarDate(to) != testCase.wantTo {
				t.Fatalf("got %s..%s, want %s..%s", FormatCalendarDate(from), FormatCalendarDate(to), testCase.wantFrom, testCase.wantTo)
			}
		})
	}
}
