package color_test

import (
	"testing"

	"swppasm/pkg/color"
)

func TestColorizeDisabled(t *testing.T) {
	color.EnableColor(false)
	defer color.EnableColor(false)

	if got := color.Colorize(color.Red, "fault"); got != "fault" {
		t.Errorf("expected plain text, got %q", got)
	}
}

func TestColorizeEnabled(t *testing.T) {
	color.EnableColor(true)
	defer color.EnableColor(false)

	expected := color.Red + "fault" + color.Reset
	if got := color.RedText("fault"); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}

	cases := []struct {
		code string
		got  string
	}{
		{color.BrightRed, color.BrightRedText("x")},
		{color.Green, color.GreenText("x")},
		{color.Yellow, color.YellowText("x")},
	}
	for _, c := range cases {
		if want := c.code + "x" + color.Reset; c.got != want {
			t.Errorf("expected %q, got %q", want, c.got)
		}
	}
}
