package util

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"My Experiment", "my_experiment"},
		{"cross-4lane", "cross_4lane"},
		{"  trailing  ", "trailing"},
		{"a--b  c", "a_b_c"},
		{"Roundabout!", "roundabout"},
		{"already_good", "already_good"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
