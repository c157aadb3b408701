package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConflicts(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{
			name: "same slot",
			a:    "Monday 9:00-12:00",
			b:    "Monday 9:00-12:00",
			want: true,
		},
		{
			name: "partial overlap",
			a:    "Monday 9:00-12:00",
			b:    "Monday 11:00-13:00",
			want: true,
		},
		{
			name: "contained range",
			a:    "Tuesday 8:00-17:00",
			b:    "Tuesday 10:00-11:00",
			want: true,
		},
		{
			name: "touching boundaries do not collide",
			a:    "Monday 9:00-10:00",
			b:    "Monday 10:00-11:00",
			want: false,
		},
		{
			name: "different days",
			a:    "Monday 9:00-12:00",
			b:    "Tuesday 9:00-12:00",
			want: false,
		},
		{
			name: "day comparison is case insensitive",
			a:    "MONDAY 9:00-10:00",
			b:    "monday 9:30-10:30",
			want: true,
		},
		{
			name: "multi entry schedules",
			a:    "Monday 9:00-10:00, Thursday 13:00-15:00",
			b:    "Wednesday 9:00-10:00; Thursday 14:00-16:00",
			want: true,
		},
		{
			name: "hour only times",
			a:    "Friday 9-12",
			b:    "Friday 11-13",
			want: true,
		},
		{
			name: "am pm markers are stripped",
			a:    "Friday 9:00am-11:00am",
			b:    "Friday 10:00-12:00",
			want: true,
		},
		{
			name: "empty schedules never collide",
			a:    "",
			b:    "Monday 9:00-12:00",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Conflicts(tt.a, tt.b))
			assert.Equal(t, tt.want, Conflicts(tt.b, tt.a), "conflict must be symmetric")
		})
	}
}

func TestConflictsCheckedMalformed(t *testing.T) {
	tests := []struct {
		name          string
		a             string
		b             string
		wantConflict  bool
		wantMalformed []string
	}{
		{
			name:          "missing time range",
			a:             "Monday",
			b:             "Monday 9:00-12:00",
			wantConflict:  false,
			wantMalformed: []string{"Monday"},
		},
		{
			name:          "inverted range",
			a:             "Monday 12:00-9:00",
			b:             "Monday 9:00-12:00",
			wantConflict:  false,
			wantMalformed: []string{"Monday 12:00-9:00"},
		},
		{
			name:          "out of range hour",
			a:             "Monday 25:00-26:00",
			b:             "Monday 9:00-12:00",
			wantConflict:  false,
			wantMalformed: []string{"Monday 25:00-26:00"},
		},
		{
			name:          "good entry still checked next to a bad one",
			a:             "garbage, Monday 9:00-12:00",
			b:             "Monday 10:00-11:00",
			wantConflict:  true,
			wantMalformed: []string{"garbage"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflict, malformed := ConflictsChecked(tt.a, tt.b)
			assert.Equal(t, tt.wantConflict, conflict)
			assert.Equal(t, tt.wantMalformed, malformed)
		})
	}
}
